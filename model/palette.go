package model

import (
	"image/color"

	"github.com/sheikhrachel/species-gol/rules"
)

// ErrorColor marks any cell value outside the species domain
var ErrorColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Palette maps Dead and species 1..MaxSpecies to display colors.
// Index 0 holds the Dead color.
var Palette = [rules.MaxSpecies + 1]color.RGBA{
	{R: 53, G: 27, B: 8, A: 255},     // Dead: saddle brown
	{R: 216, G: 191, B: 216, A: 255}, // thistle
	{R: 95, G: 158, B: 160, A: 255},  // cadet blue
	{R: 46, G: 139, B: 87, A: 255},   // sea green
	{R: 245, G: 222, B: 179, A: 255}, // wheat
	{R: 189, G: 183, B: 107, A: 255}, // dark khaki
	{R: 255, G: 215, B: 0, A: 255},   // gold
	{R: 255, G: 69, B: 0, A: 255},    // orange red
	{R: 178, G: 34, B: 34, A: 255},   // firebrick
	{R: 219, G: 112, B: 147, A: 255}, // pale violet red
	{R: 139, G: 0, B: 0, A: 255},     // dark red
}

// ColorOf returns the display color of s, or ErrorColor outside the domain
func ColorOf(s rules.SpeciesID) color.RGBA {
	switch {
	case s == rules.Dead:
		return Palette[0]
	case s >= 1 && s <= rules.MaxSpecies:
		return Palette[s]
	default:
		return ErrorColor
	}
}

// FillRGBA writes one RGBA pixel per cell into buf, which must hold 4*len(cells) bytes
func FillRGBA(buf []byte, cells []rules.SpeciesID) {
	for i, s := range cells {
		col := ColorOf(s)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
