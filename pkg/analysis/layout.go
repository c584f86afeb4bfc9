package analysis

import (
	"sort"

	"corgraph/pkg/graph"
)

// Position is a derived 2D coordinate for an entity. Positions are a data
// output for downstream renderers, not a rendering concern here.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HierarchyPositions computes deterministic layered positions from the
// ownership hierarchy. An entity's layer is its shortest distance from the
// nearest ownership root; entities outside the ownership subgraph sit on a
// layer of their own below the deepest one. Layers run top-down (y
// decreases with depth) and entities within a layer are spread evenly
// across [-2, 2] in code order.
//
// When the ownership subgraph has no in-degree-0 node (a cycle), the node
// with the highest out-degree takes the root role, lowest code winning
// ties.
func HierarchyPositions(g *graph.Graph) map[string]Position {
	successors, inDegree, outDegree := ownershipAdjacency(g)

	var roots []string
	for code, degree := range inDegree {
		if degree == 0 {
			roots = append(roots, code)
		}
	}
	sort.Strings(roots)

	if len(roots) == 0 && len(outDegree) > 0 {
		best, bestDegree := "", -1
		codes := make([]string, 0, len(outDegree))
		for code := range outDegree {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if outDegree[code] > bestDegree {
				best, bestDegree = code, outDegree[code]
			}
		}
		roots = []string{best}
	}

	// Layer per node: minimum distance from any root.
	layers := make(map[string]int)
	maxLayer := 0
	for _, root := range roots {
		for code, dist := range bfsDistances(successors, root) {
			if current, ok := layers[code]; !ok || dist < current {
				layers[code] = dist
			}
			if dist > maxLayer {
				maxLayer = dist
			}
		}
	}

	// Entities outside the ownership subgraph share the bottom layer.
	orphanLayer := maxLayer + 1
	for _, code := range g.NodeCodes() {
		if _, ok := layers[code]; !ok {
			layers[code] = orphanLayer
		}
	}

	byLayer := make(map[int][]string)
	for code, layer := range layers {
		byLayer[layer] = append(byLayer[layer], code)
	}

	positions := make(map[string]Position, len(layers))
	for layer, codes := range byLayer {
		sort.Strings(codes)
		for i, code := range codes {
			x := 0.0
			if len(codes) > 1 {
				x = -2 + 4*float64(i)/float64(len(codes)-1)
			}
			positions[code] = Position{X: x, Y: -float64(layer)}
		}
	}
	return positions
}
