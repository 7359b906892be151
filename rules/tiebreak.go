package rules

// Candidates is the candidacy list of a dead cell: species with exactly 3 neighbors,
// in increasing species order. It lives on the stack for one rule evaluation.
type Candidates struct {
	ids [MaxSpecies]SpeciesID
	n   int
}

func (c *Candidates) add(s SpeciesID) {
	c.ids[c.n] = s
	c.n++
}

// Len returns the number of candidates
func (c *Candidates) Len() int { return c.n }

// Pick selects Hash(seed) mod Len. It panics on an empty list.
func (c *Candidates) Pick(seed uint32) SpeciesID {
	return c.ids[Hash(seed)%uint32(c.n)]
}

// Hash is a 32-bit permuted congruential hash. All arithmetic wraps at 32 bits.
func Hash(seed uint32) uint32 {
	state := seed*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

// Seed returns the tie-break seed for a cell. With salted false the seed is the cell's
// linear index alone, so a cell presenting the same candidates always picks the same
// species. With salted true the generation number is folded in.
func Seed(index int, generation uint64, salted bool) uint32 {
	seed := uint32(index)
	if salted {
		seed ^= uint32(generation) * 0x9E3779B9
	}
	return seed
}
