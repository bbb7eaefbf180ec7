package entity

import (
	"errors"
	"fmt"
)

// MinBoardSide is the side of the smallest playable board (3x3).
const MinBoardSide = 3

var (
	ErrFreeScenarioRequired = errors.New("free scenario is required")
	ErrBoardSizeMismatch    = errors.New("drawn scenarios do not fill the board")
	ErrDuplicateScenario    = errors.New("duplicate scenario on board")
)

// BoardSide returns the side length of a square board of size cells, or 0 if size is not a perfect square.
func BoardSide(size int) int {
	if size <= 0 {
		return 0
	}

	side := 1
	for side*side < size {
		side++
	}

	if side*side != size {
		return 0
	}

	return side
}

// IsValidBoardSize reports whether size is an odd perfect square with at least a 3x3 layout,
// so the board has a single center cell.
func IsValidBoardSize(size int) bool {
	side := BoardSide(size)

	return side >= MinBoardSide && side%2 == 1
}

// CenterIndex is the position of the free scenario on a board of size cells.
func CenterIndex(size int) int {
	return (size - 1) / 2
}

// BuildBoard lays drawn scenarios out in order around the free scenario at the center.
func BuildBoard(free Scenario, drawn []Scenario) ([]Scenario, error) {
	if !free.Free {
		return nil, ErrFreeScenarioRequired
	}

	size := len(drawn) + 1
	if !IsValidBoardSize(size) {
		return nil, fmt.Errorf("%w: %d cells", ErrBoardSizeMismatch, size)
	}

	center := CenterIndex(size)
	seen := make(map[int64]struct{}, size)
	board := make([]Scenario, 0, size)

	for i, scenario := range drawn {
		if i == center {
			board = append(board, free)
			seen[free.ID] = struct{}{}
		}

		if _, dup := seen[scenario.ID]; dup || scenario.Free {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateScenario, scenario.ID)
		}

		seen[scenario.ID] = struct{}{}
		board = append(board, scenario)
	}

	return board, nil
}
