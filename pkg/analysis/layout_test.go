package analysis

import (
	"testing"
)

func TestHierarchyPositionsLayersByDepth(t *testing.T) {
	g := buildGraph(
		map[string]string{
			"P":  "Parent",
			"S1": "Sub One",
			"S2": "Sub Two",
			"T":  "Terminal",
			"X":  "Standalone",
		},
		[]ownershipPair{
			{owner: "P", owned: "S1"},
			{owner: "P", owned: "S2"},
			{owner: "S1", owned: "T"},
		},
		nil,
	)

	positions := HierarchyPositions(g)

	if len(positions) != g.NodeCount() {
		t.Fatalf("every node needs a position: got %d, want %d", len(positions), g.NodeCount())
	}
	if positions["P"].Y != 0 {
		t.Fatalf("root should sit on the top layer, got y=%v", positions["P"].Y)
	}
	if positions["S1"].Y != -1 || positions["S2"].Y != -1 {
		t.Fatalf("first-level subsidiaries should share a layer: %v, %v",
			positions["S1"], positions["S2"])
	}
	if positions["T"].Y != -2 {
		t.Fatalf("unexpected layer for T: %v", positions["T"])
	}
	// X has no ownership edges and sits below the deepest layer.
	if positions["X"].Y != -3 {
		t.Fatalf("standalone entity should sit on the bottom layer: %v", positions["X"])
	}

	// Siblings spread across [-2, 2] in code order.
	if positions["S1"].X != -2 || positions["S2"].X != 2 {
		t.Fatalf("unexpected sibling spread: %v, %v", positions["S1"], positions["S2"])
	}
	if positions["P"].X != 0 {
		t.Fatalf("lone layer member should center at 0: %v", positions["P"])
	}
}

func TestHierarchyPositionsCycleFallback(t *testing.T) {
	g := buildGraph(
		map[string]string{"A": "Alpha", "B": "Beta", "C": "Gamma"},
		[]ownershipPair{
			{owner: "A", owned: "B"},
			{owner: "B", owned: "C"},
			{owner: "C", owned: "A"},
			{owner: "A", owned: "C"},
		},
		nil,
	)

	positions := HierarchyPositions(g)

	// No in-degree-0 node exists; A has the highest out-degree and takes
	// the root role.
	if positions["A"].Y != 0 {
		t.Fatalf("fallback root should sit on the top layer: %v", positions["A"])
	}
	if positions["B"].Y != -1 || positions["C"].Y != -1 {
		t.Fatalf("unexpected layers: B=%v C=%v", positions["B"], positions["C"])
	}
}
