package plinko

import (
	"iter"

	"github.com/xtding233/plinko-backend/internal/board"
)

// step moves the ball one row down from col. At the walls the ball can
// only bounce inward and the source is not consulted.
func step(col int, src BitSource) int {
	switch col {
	case 0:
		return 1
	case board.ColumnCount - 1:
		return col - 1
	}
	if src.NextBool() {
		return col + 1
	}
	return col - 1
}

// Walk lazily yields (rowIndex, column) for rows rows, starting from the
// middle column. The sequence is single-use: ranging over it a second
// time yields nothing.
func Walk(rows int, src BitSource) iter.Seq2[int, int] {
	if src == nil {
		src = DefaultSource()
	}
	used := false
	return func(yield func(int, int) bool) {
		if used {
			return
		}
		used = true
		col := board.StartColumn
		for r := 0; r < rows; r++ {
			col = step(col, src)
			if !yield(r, col) {
				return
			}
		}
	}
}

// Trajectory runs the whole walk and returns one column per row.
func Trajectory(rows int, src BitSource) []int {
	if rows <= 0 {
		return nil
	}
	path := make([]int, 0, rows)
	for _, col := range Walk(rows, src) {
		path = append(path, col)
	}
	return path
}
