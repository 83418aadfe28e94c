package layout

import (
	"github.com/fchimpan/block-breaker/internal/config"
)

// Cell is one block slot of the grid, in logical pixels.
type Cell struct {
	Row, Col int
	X, Y     int
	W, H     int
	Color    string
}

// BlockGrid is a Rows x Cols arrangement of blocks, row-major.
type BlockGrid struct {
	Rows  int
	Cols  int
	Cells [][]Cell // [row][col]
}

// Len returns the number of blocks in the grid.
func (g BlockGrid) Len() int {
	return g.Rows * g.Cols
}

// BuildBlockGrid lays out the block grid described by cfg.
//
// Blocks are placed at Left + col*(Width+Gap), Top + row*(Height+Gap), and rows
// cycle through cfg.Colors. A column is kept while its blocks' centres lie on
// screen, so the ball can always reach every block; the rightmost column may
// overhang the edge.
func BuildBlockGrid(cfg config.BlocksConfig, screenW int) BlockGrid {
	rows := max(cfg.Rows, 0)
	cols := FitCols(cfg, screenW)

	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, cols)
		color := ""
		if len(cfg.Colors) > 0 {
			color = cfg.Colors[r%len(cfg.Colors)]
		}
		for c := 0; c < cols; c++ {
			cells[r][c] = Cell{
				Row:   r,
				Col:   c,
				X:     cfg.Left + c*(cfg.Width+cfg.Gap),
				Y:     cfg.Top + r*(cfg.Height+cfg.Gap),
				W:     cfg.Width,
				H:     cfg.Height,
				Color: color,
			}
		}
	}

	return BlockGrid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// FitCols returns how many of the configured columns have their centre within screenW.
func FitCols(cfg config.BlocksConfig, screenW int) int {
	if cfg.Cols <= 0 || cfg.Width <= 0 {
		return 0
	}
	stride := cfg.Width + cfg.Gap
	cols := cfg.Cols
	for cols > 0 && cfg.Left+(cols-1)*stride+cfg.Width/2 >= screenW {
		cols--
	}
	return cols
}
