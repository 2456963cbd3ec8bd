package engine

import "fmt"

// TraceEvent identifies a single transition during ray simulation.
type TraceEvent string

const (
	TraceAdvance TraceEvent = "advance"
	TraceDeflect TraceEvent = "deflect"
	TraceDetour  TraceEvent = "detour"
	TraceHit     TraceEvent = "hit"
	TraceExit    TraceEvent = "exit"
	TraceCycle   TraceEvent = "cycle"
)

// TraceStep is passed to a TraceObserver for every transition of a traced
// ray: the cell just reached, the direction of travel out of it, and the
// deflection count so far.
type TraceStep struct {
	Event       TraceEvent
	Position    Position
	Direction   Direction
	Deflections int
}

// TraceObserver receives per-step notifications during ray simulation.
// A nil observer is valid and skips notification entirely.
type TraceObserver func(step TraceStep)

// deflectionKey pairs the corner an atom occupies relative to the ray's
// current cell with the ray's incoming direction.
type deflectionKey struct {
	corner Corner
	dir    Direction
}

// deflectionTable maps every (corner, direction) pair to an outgoing
// direction. An atom ahead of the ray on a diagonal bends it 90 degrees
// away; an atom behind the ray on a diagonal sends it straight back. The
// table is total over all sixteen pairs so no combination falls through.
var deflectionTable = map[deflectionKey]Direction{
	{TopLeft, DirLeft}:  DirDown,
	{TopLeft, DirUp}:    DirRight,
	{TopLeft, DirRight}: DirLeft,
	{TopLeft, DirDown}:  DirUp,

	{TopRight, DirRight}: DirDown,
	{TopRight, DirUp}:    DirLeft,
	{TopRight, DirLeft}:  DirRight,
	{TopRight, DirDown}:  DirUp,

	{BottomLeft, DirLeft}:  DirUp,
	{BottomLeft, DirDown}:  DirRight,
	{BottomLeft, DirRight}: DirLeft,
	{BottomLeft, DirUp}:    DirDown,

	{BottomRight, DirRight}: DirUp,
	{BottomRight, DirDown}:  DirLeft,
	{BottomRight, DirLeft}:  DirRight,
	{BottomRight, DirUp}:    DirDown,
}

// DeflectDirection resolves the outgoing direction for a ray traveling dir
// through a cell whose diagonal neighbor at corner holds an atom.
func DeflectDirection(corner Corner, dir Direction) Direction {
	return deflectionTable[deflectionKey{corner, dir}]
}

// traceState keys the loop guard. Direction is part of the key because a
// legal ray path may cross the same cell twice in different directions.
type traceState struct {
	pos Position
	dir Direction
}

// TraceRay simulates a ray from a boundary entry cell traveling dir and
// returns its record. The entry must be a valid boundary cell and dir must
// point into the grid; callers validate with IsBoundaryEntry and
// EntryDirection. If the simulation ever revisits a (position, direction)
// state the ray is recorded as returning to its entry and the record is
// returned together with ErrSimulationCycle.
func (b *Board) TraceRay(entry Position, dir Direction, observer TraceObserver) (*RayRecord, error) {
	record := &RayRecord{
		Entry:     entry,
		Direction: dir,
		Path:      []Position{entry},
	}

	notify := func(event TraceEvent, pos Position, d Direction) {
		if observer != nil {
			observer(TraceStep{
				Event:       event,
				Position:    pos,
				Direction:   d,
				Deflections: record.Deflections,
			})
		}
	}

	pos := entry
	visited := map[traceState]bool{{pos, dir}: true}

	for {
		dx, dy := dir.Delta()
		pos = Position{X: pos.X + dx, Y: pos.Y + dy}
		record.Path = append(record.Path, pos)

		if !b.IsInterior(pos) {
			exit := pos
			record.Exit = &exit
			if record.Deflections > 0 {
				record.Outcome = Deflected
			} else {
				record.Outcome = Exit
			}
			notify(TraceExit, pos, dir)
			return record, nil
		}
		notify(TraceAdvance, pos, dir)

		if b.AtomAt(pos) {
			record.Outcome = Hit
			notify(TraceHit, pos, dir)
			return record, nil
		}

		adjacent := b.AdjacentAtoms(pos)
		switch {
		case len(adjacent) >= 2:
			// Two flanking atoms turn the ray straight back along the
			// path it came in on.
			record.Outcome = DoubleDeflected
			exit := entry
			record.Exit = &exit
			record.Path = append(record.Path, entry)
			notify(TraceDetour, pos, dir.Reverse())
			return record, nil
		case len(adjacent) == 1:
			dir = DeflectDirection(adjacent[0].Corner, dir)
			record.Deflections++
			notify(TraceDeflect, pos, dir)
		}

		state := traceState{pos, dir}
		if visited[state] {
			record.Outcome = DoubleDeflected
			exit := entry
			record.Exit = &exit
			record.Path = append(record.Path, entry)
			notify(TraceCycle, pos, dir)
			return record, fmt.Errorf("%w: repeated state at (%d,%d) heading %s", ErrSimulationCycle, pos.X, pos.Y, dir)
		}
		visited[state] = true
	}
}
