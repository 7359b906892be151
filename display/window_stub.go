//go:build !ebiten

package display

import "github.com/pkg/errors"

// Available reports whether this build can open a window
const Available = false

// Run always fails in builds without the ebiten tag
func Run(Simulation, Options) error {
	return errors.New("[Run] window renderer requires building with -tags ebiten")
}
