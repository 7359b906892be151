package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	gridPosBlock = "██"

	ansiClearScreen = "\033[H\033[2J"
	ansiReset       = "\033[0m"
)

// TerminalRenderer draws a generation as 24-bit colored blocks
type TerminalRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	w := bufio.NewWriter(r.Out)
	for y := range g.height {
		for x := range g.width {
			col := ColorOf(g.Get(x, y))
			fmt.Fprintf(w, "\033[38;2;%d;%d;%dm%s", col.R, col.G, col.B, gridPosBlock)
		}
		fmt.Fprintln(w, ansiReset)
	}
	if err := w.Flush(); err != nil {
		fmt.Println("Error rendering grid:", err)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, ansiClearScreen)
}
