package game

import (
	"github.com/fchimpan/block-breaker/internal/layout"
)

type Block struct {
	Rect     Rect
	Color    string
	Row, Col int
}

func blocksFromGrid(grid layout.BlockGrid) []Block {
	blocks := make([]Block, 0, grid.Len())
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.Cells[r][c]
			blocks = append(blocks, Block{
				Rect: Rect{
					X: float64(cell.X),
					Y: float64(cell.Y),
					W: float64(cell.W),
					H: float64(cell.H),
				},
				Color: cell.Color,
				Row:   cell.Row,
				Col:   cell.Col,
			})
		}
	}
	return blocks
}

// removeBlocks drops every block for which kill returns true, preserving the
// order of the survivors, and returns how many were removed.
func removeBlocks(blocks []Block, kill func(Block) bool) ([]Block, int) {
	out := blocks[:0]
	removed := 0
	for _, b := range blocks {
		if kill(b) {
			removed++
			continue
		}
		out = append(out, b)
	}
	return out, removed
}
