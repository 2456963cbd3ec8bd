package engine

import (
	"reflect"
	"testing"
)

func buildBoard(t *testing.T, size int, atoms ...Position) *Board {
	t.Helper()
	board := NewBoard(size)
	for _, atom := range atoms {
		if err := board.PlaceAtom(atom); err != nil {
			t.Fatalf("Failed to place atom at %v: %v", atom, err)
		}
	}
	return board
}

func TestTraceRay_StraightExit(t *testing.T) {
	board := buildBoard(t, 8)

	record, err := board.TraceRay(Position{-1, 3}, DirRight, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != Exit {
		t.Errorf("Expected outcome %s, got %s", Exit, record.Outcome)
	}
	if record.Exit == nil || *record.Exit != (Position{8, 3}) {
		t.Errorf("Expected exit at (8,3), got %v", record.Exit)
	}
	if record.Deflections != 0 {
		t.Errorf("Expected 0 deflections, got %d", record.Deflections)
	}
	// entry plus 8 interior cells plus the exit cell
	if len(record.Path) != 10 {
		t.Errorf("Expected path length 10, got %d", len(record.Path))
	}
}

func TestTraceRay_DirectHit(t *testing.T) {
	board := buildBoard(t, 8, Position{3, 3})

	record, err := board.TraceRay(Position{3, -1}, DirDown, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != Hit {
		t.Errorf("Expected outcome %s, got %s", Hit, record.Outcome)
	}
	if record.Exit != nil {
		t.Errorf("Hit must have no exit, got %v", *record.Exit)
	}
	last := record.Path[len(record.Path)-1]
	if last != (Position{3, 3}) {
		t.Errorf("Expected path to end at the atom, got %v", last)
	}
}

func TestTraceRay_SingleDeflection(t *testing.T) {
	// Ray enters the left edge at row 2, the atom at (1,1) sits at the
	// top-right of cell (0,2) and bends the ray downward.
	board := buildBoard(t, 8, Position{1, 1})

	record, err := board.TraceRay(Position{-1, 2}, DirRight, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != Deflected {
		t.Fatalf("Expected outcome %s, got %s", Deflected, record.Outcome)
	}
	if record.Deflections != 1 {
		t.Errorf("Expected 1 deflection, got %d", record.Deflections)
	}
	if record.Exit == nil || *record.Exit != (Position{0, 8}) {
		t.Errorf("Expected exit at (0,8), got %v", record.Exit)
	}
	if *record.Exit == record.Entry {
		t.Error("Single deflection must not return to its entry")
	}
}

func TestTraceRay_DoubleDeflection(t *testing.T) {
	// Atoms flanking the first cell turn the ray straight back.
	board := buildBoard(t, 8, Position{0, 1}, Position{2, 1})

	record, err := board.TraceRay(Position{1, -1}, DirDown, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != DoubleDeflected {
		t.Fatalf("Expected outcome %s, got %s", DoubleDeflected, record.Outcome)
	}
	if record.Exit == nil || *record.Exit != record.Entry {
		t.Errorf("Expected exit at entry %v, got %v", record.Entry, record.Exit)
	}
	last := record.Path[len(record.Path)-1]
	if last != record.Entry {
		t.Errorf("Expected path to end back at the entry, got %v", last)
	}
}

func TestTraceRay_EdgeReversal(t *testing.T) {
	// An atom beside the ray's lane sends it straight back out the way it
	// came: the atom at (1,0) sits at the top-right of cell (0,1) while the
	// ray travels down, which is a reversing pair.
	board := buildBoard(t, 8, Position{1, 0})

	record, err := board.TraceRay(Position{0, -1}, DirDown, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != Deflected {
		t.Fatalf("Expected outcome %s, got %s", Deflected, record.Outcome)
	}
	if record.Deflections != 1 {
		t.Errorf("Expected 1 deflection, got %d", record.Deflections)
	}
	if record.Exit == nil || *record.Exit != record.Entry {
		t.Errorf("Expected reversal to exit at entry %v, got %v", record.Entry, record.Exit)
	}
}

func TestTraceRay_MultipleDeflections(t *testing.T) {
	// Two atoms bend the ray twice: down at cell (1,3) away from (2,2),
	// then left at cell (1,5) away from (2,6), exiting the left edge.
	board := buildBoard(t, 8, Position{2, 2}, Position{2, 6})

	record, err := board.TraceRay(Position{-1, 3}, DirRight, nil)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if record.Outcome != Deflected {
		t.Fatalf("Expected outcome %s, got %s", Deflected, record.Outcome)
	}
	if record.Deflections < 2 {
		t.Errorf("Expected at least 2 deflections, got %d", record.Deflections)
	}
	if record.Exit == nil {
		t.Fatal("Expected an exit position")
	}
	if !board.IsBoundaryEntry(*record.Exit) {
		t.Errorf("Exit %v is not a boundary cell", *record.Exit)
	}
}

func TestTraceRay_Deterministic(t *testing.T) {
	board := buildBoard(t, 8, Position{2, 2}, Position{5, 3}, Position{4, 6})

	entries := []struct {
		pos Position
		dir Direction
	}{
		{Position{-1, 0}, DirRight},
		{Position{-1, 4}, DirRight},
		{Position{3, -1}, DirDown},
		{Position{8, 6}, DirLeft},
		{Position{5, 8}, DirUp},
	}

	for _, entry := range entries {
		first, err1 := board.TraceRay(entry.pos, entry.dir, nil)
		second, err2 := board.TraceRay(entry.pos, entry.dir, nil)
		if err1 != nil || err2 != nil {
			t.Fatalf("TraceRay failed: %v / %v", err1, err2)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Entry %v: repeated trace differs: %+v vs %+v", entry.pos, first, second)
		}
	}
}

func TestTraceRay_ObserverSeesEveryStep(t *testing.T) {
	board := buildBoard(t, 8, Position{1, 1})

	var events []TraceEvent
	observer := func(step TraceStep) {
		events = append(events, step.Event)
	}

	record, err := board.TraceRay(Position{-1, 2}, DirRight, observer)
	if err != nil {
		t.Fatalf("TraceRay failed: %v", err)
	}

	if len(events) == 0 {
		t.Fatal("Observer received no events")
	}
	if events[len(events)-1] != TraceExit {
		t.Errorf("Expected final event %s, got %s", TraceExit, events[len(events)-1])
	}

	deflects := 0
	for _, event := range events {
		if event == TraceDeflect {
			deflects++
		}
	}
	if deflects != record.Deflections {
		t.Errorf("Observer saw %d deflect events, record has %d", deflects, record.Deflections)
	}
}

func TestDeflectDirection_TotalTable(t *testing.T) {
	corners := []Corner{TopLeft, TopRight, BottomLeft, BottomRight}
	directions := []Direction{DirUp, DirDown, DirLeft, DirRight}

	for _, corner := range corners {
		for _, dir := range directions {
			out := DeflectDirection(corner, dir)
			if out == "" {
				t.Errorf("No table entry for corner %s direction %s", corner, dir)
				continue
			}
			if _, ok := ParseDirection(string(out)); !ok {
				t.Errorf("Table entry (%s,%s) yields invalid direction %q", corner, dir, out)
			}
			if out == dir {
				t.Errorf("Table entry (%s,%s) must change the direction", corner, dir)
			}
		}
	}
}

func TestDeflectDirection_KnownPairs(t *testing.T) {
	tests := []struct {
		corner Corner
		in     Direction
		want   Direction
	}{
		{TopLeft, DirLeft, DirDown},
		{TopLeft, DirUp, DirRight},
		{TopRight, DirRight, DirDown},
		{TopRight, DirUp, DirLeft},
		{BottomLeft, DirLeft, DirUp},
		{BottomLeft, DirDown, DirRight},
		{BottomRight, DirRight, DirUp},
		{BottomRight, DirDown, DirLeft},
		// Atom behind the ray on a diagonal reverses it
		{TopLeft, DirRight, DirLeft},
		{TopLeft, DirDown, DirUp},
		{BottomRight, DirLeft, DirRight},
		{BottomRight, DirUp, DirDown},
	}

	for _, tt := range tests {
		if got := DeflectDirection(tt.corner, tt.in); got != tt.want {
			t.Errorf("DeflectDirection(%s, %s) = %s, want %s", tt.corner, tt.in, got, tt.want)
		}
	}
}
