package engine

import (
	"fmt"
	"math/rand"
)

// Board is the pure geometric view of a game: a square interior grid plus
// the atoms hidden on it. The ray simulator operates on Boards directly so
// it can be tested without a full engine.
type Board struct {
	Size  int
	Atoms []Position
}

// NewBoard creates an empty board of the given size.
func NewBoard(size int) *Board {
	return &Board{Size: size}
}

// IsInterior reports whether pos is a playable grid cell.
func (b *Board) IsInterior(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Size && pos.Y >= 0 && pos.Y < b.Size
}

// IsCorner reports whether pos is one of the four invalid outer corners of
// the boundary ring.
func (b *Board) IsCorner(pos Position) bool {
	onX := pos.X == -1 || pos.X == b.Size
	onY := pos.Y == -1 || pos.Y == b.Size
	return onX && onY
}

// IsBoundaryEntry reports whether pos is a valid ray entry cell: on the
// boundary ring on exactly one axis, inside the grid span on the other.
func (b *Board) IsBoundaryEntry(pos Position) bool {
	onX := pos.X == -1 || pos.X == b.Size
	onY := pos.Y == -1 || pos.Y == b.Size
	if onX && onY {
		return false
	}
	if onX {
		return pos.Y >= 0 && pos.Y < b.Size
	}
	if onY {
		return pos.X >= 0 && pos.X < b.Size
	}
	return false
}

// EntryDirection returns the single inward direction for a boundary entry
// cell, or false if pos is not a valid entry.
func (b *Board) EntryDirection(pos Position) (Direction, bool) {
	if !b.IsBoundaryEntry(pos) {
		return "", false
	}
	switch {
	case pos.X == -1:
		return DirRight, true
	case pos.X == b.Size:
		return DirLeft, true
	case pos.Y == -1:
		return DirDown, true
	default:
		return DirUp, true
	}
}

// AtomAt reports whether an atom occupies pos.
func (b *Board) AtomAt(pos Position) bool {
	return containsPosition(b.Atoms, pos)
}

// PlaceAtom adds an atom at an interior cell.
func (b *Board) PlaceAtom(pos Position) error {
	if !b.IsInterior(pos) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
	}
	if b.AtomAt(pos) {
		return fmt.Errorf("%w: (%d,%d)", ErrDuplicateAtom, pos.X, pos.Y)
	}
	b.Atoms = append(b.Atoms, pos)
	return nil
}

// AdjacentAtoms returns the atoms diagonally adjacent to pos, each labeled
// with the corner it occupies relative to pos.
func (b *Board) AdjacentAtoms(pos Position) []AdjacentAtom {
	corners := []struct {
		dx, dy int
		corner Corner
	}{
		{-1, -1, TopLeft},
		{1, -1, TopRight},
		{-1, 1, BottomLeft},
		{1, 1, BottomRight},
	}

	var adjacent []AdjacentAtom
	for _, c := range corners {
		neighbor := Position{X: pos.X + c.dx, Y: pos.Y + c.dy}
		if b.AtomAt(neighbor) {
			adjacent = append(adjacent, AdjacentAtom{Position: neighbor, Corner: c.corner})
		}
	}
	return adjacent
}

// RandomAtoms places count atoms at distinct cells within the inner margin
// [1,size-2] on both axes, the same band the classic game uses so every atom
// has a full ring of interior neighbors.
func RandomAtoms(size, count int, rng *rand.Rand) []Position {
	span := size - 2
	atoms := make([]Position, 0, count)
	for len(atoms) < count {
		pos := Position{
			X: 1 + rng.Intn(span),
			Y: 1 + rng.Intn(span),
		}
		if !containsPosition(atoms, pos) {
			atoms = append(atoms, pos)
		}
	}
	return atoms
}
