package rules

// SpeciesID identifies the organism occupying a cell. Dead marks an empty cell.
type SpeciesID int32

const (
	Dead SpeciesID = -1

	// MinSpecies and MaxSpecies bound the configured species count. MaxSpecies also
	// sizes the per-cell birth-count accumulator, so IDs never exceed it.
	MinSpecies = 5
	MaxSpecies = 10
)

// neighborOffsets is the Moore neighborhood, row by row
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// InDomain reports whether s is Dead or a species in 1..speciesCount
func InDomain(s SpeciesID, speciesCount int) bool {
	return s == Dead || (s >= 1 && int(s) <= speciesCount)
}

/*
ApplySpeciesRules computes the next state of the cell at (x, y) from the read-only
current generation, stored row-major with the given width and height.

A live cell survives with its species when 2 or 3 of its neighbors share that species,
and dies otherwise. A dead cell is born as one of the species with exactly 3 neighbors;
when several qualify, Pick arbitrates using seed. Neighbors outside the grid are absent.
*/
func ApplySpeciesRules(current []SpeciesID, width, height, x, y, speciesCount int, seed uint32) SpeciesID {
	s := current[y*width+x]

	if s != Dead {
		same := 0
		for _, d := range neighborOffsets {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			if current[ny*width+nx] == s {
				same++
			}
		}
		if same == 2 || same == 3 {
			return s
		}
		return Dead
	}

	var counts [MaxSpecies + 1]int
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		// IDs outside 1..speciesCount are never counted, so a corrupt
		// neighbor cannot index past the accumulator.
		if n := current[ny*width+nx]; n >= 1 && int(n) <= speciesCount && n <= MaxSpecies {
			counts[n]++
		}
	}

	var candidates Candidates
	for i := 1; i <= speciesCount && i <= MaxSpecies; i++ {
		if counts[i] == 3 {
			candidates.add(SpeciesID(i))
		}
	}
	if candidates.Len() == 0 {
		return Dead
	}
	return candidates.Pick(seed)
}
