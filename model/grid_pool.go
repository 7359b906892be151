package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles generation buffers across restarts
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a grid from the pool, resized and cleared to Dead
func (p *GridPool) Get(width, height int) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(width, height)
	return g
}

// Put hands a grid back to the pool; Get clears it on the way out
func (p *GridPool) Put(g *Grid) {
	p.pool.Put(g)
}
