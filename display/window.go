//go:build ebiten

package display

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/species-gol/model"
)

// Available reports whether this build can open a window
const Available = true

type window struct {
	sim    Simulation
	img    *ebiten.Image
	pixels []byte
	width  int
	height int
	scale  int

	paused   bool
	tickOnce bool
}

// Update handles input and advances the simulation one tick per frame
func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.tickOnce = true
	}

	if !w.paused || w.tickOnce {
		w.tickOnce = false
		done, err := w.sim.Advance()
		if err != nil {
			return err
		}
		if done {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw paints the current generation
func (w *window) Draw(screen *ebiten.Image) {
	model.FillRGBA(w.pixels, w.sim.Cells())
	w.img.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

// Layout returns the logical screen size
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width * w.scale, w.height * w.scale
}

// Run opens a window and blocks until it is closed or the simulation is done
func Run(sim Simulation, opts Options) error {
	width, height := sim.Size()
	scale := max(opts.Scale, 1)

	win := &window{
		sim:    sim,
		img:    ebiten.NewImage(width, height),
		pixels: make([]byte, 4*width*height),
		width:  width,
		height: height,
		scale:  scale,
	}

	tps := ebiten.SyncWithFPS
	if opts.FrameRate > 0 {
		tps = max(int(time.Second/opts.FrameRate), 1)
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Run] window closed with error")
	}
	return nil
}
