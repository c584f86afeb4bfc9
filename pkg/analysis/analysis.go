// Package analysis computes derived structural and financial metrics over
// an assembled group graph. Every function reads the graph and returns a
// lookup table owned by the caller; the graph is never mutated.
package analysis

import (
	"sort"
	"strings"

	"corgraph/pkg/graph"
)

// Node size bounds for min-max normalization.
const (
	MinNodeSize = 20.0
	MaxNodeSize = 100.0
)

// NodeSizes maps every entity to a display size derived from its attribute
// bag. For each node, the first attribute (in ascending name order) whose
// name contains attributeKey case-insensitively is parsed as a currency
// amount; nodes without a match count as 0. Matched values are min-max
// normalized into [MinNodeSize, MaxNodeSize]. When the maximum value is 0,
// or every matched value is the same, all nodes get the midpoint size
// instead of a normalized one.
func NodeSizes(g *graph.Graph, attributeKey string) map[string]float64 {
	needle := strings.ToLower(attributeKey)

	codes := g.NodeCodes()
	values := make(map[string]float64, len(codes))
	minValue, maxValue := 0.0, 0.0

	for i, code := range codes {
		node, _ := g.Node(code)
		value := 0.0

		attrNames := make([]string, 0, len(node.Attributes))
		for name := range node.Attributes {
			attrNames = append(attrNames, name)
		}
		sort.Strings(attrNames)

		for _, name := range attrNames {
			if strings.Contains(strings.ToLower(name), needle) {
				value = graph.ParseAmount(node.Attributes[name].Value)
				break
			}
		}

		values[code] = value
		if i == 0 || value < minValue {
			minValue = value
		}
		if i == 0 || value > maxValue {
			maxValue = value
		}
	}

	sizes := make(map[string]float64, len(codes))
	if maxValue > 0 && maxValue > minValue {
		for code, value := range values {
			normalized := (value - minValue) / (maxValue - minValue)
			sizes[code] = MinNodeSize + (MaxNodeSize-MinNodeSize)*normalized
		}
	} else {
		for code := range values {
			sizes[code] = (MinNodeSize + MaxNodeSize) / 2
		}
	}

	return sizes
}

// ownershipAdjacency restricts the graph to ownership-kind edges and
// returns successor lists plus in/out degree per subgraph node.
func ownershipAdjacency(g *graph.Graph) (successors map[string][]string, inDegree, outDegree map[string]int) {
	successors = make(map[string][]string)
	inDegree = make(map[string]int)
	outDegree = make(map[string]int)

	for _, edge := range g.EdgesByKind(graph.KindOwnership) {
		successors[edge.Source] = append(successors[edge.Source], edge.Target)
		outDegree[edge.Source]++
		inDegree[edge.Target]++
		if _, ok := inDegree[edge.Source]; !ok {
			inDegree[edge.Source] = 0
		}
		if _, ok := outDegree[edge.Target]; !ok {
			outDegree[edge.Target] = 0
		}
	}
	return successors, inDegree, outDegree
}

// OwnershipRoots returns the entities with in-degree 0 within the ownership
// subgraph: the group's ultimate parents. Multiple roots are possible.
func OwnershipRoots(g *graph.Graph) []string {
	_, inDegree, _ := ownershipAdjacency(g)

	var roots []string
	for code, degree := range inDegree {
		if degree == 0 {
			roots = append(roots, code)
		}
	}
	sort.Strings(roots)
	return roots
}

// OwnershipLeaves returns the entities with out-degree 0 within the
// ownership subgraph: the group's terminal subsidiaries.
func OwnershipLeaves(g *graph.Graph) []string {
	_, _, outDegree := ownershipAdjacency(g)

	var leaves []string
	for code, degree := range outDegree {
		if degree == 0 {
			leaves = append(leaves, code)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// HierarchyDepth returns the maximum unweighted shortest-path distance from
// any ownership root to any reachable entity. A graph with no ownership
// edges has depth 0.
func HierarchyDepth(g *graph.Graph) int {
	successors, inDegree, _ := ownershipAdjacency(g)

	depth := 0
	for code, degree := range inDegree {
		if degree != 0 {
			continue
		}
		for _, dist := range bfsDistances(successors, code) {
			if dist > depth {
				depth = dist
			}
		}
	}
	return depth
}

// bfsDistances returns unweighted shortest-path distances (edge count) from
// root to every reachable node.
func bfsDistances(successors map[string][]string, root string) map[string]int {
	distances := map[string]int{root: 0}
	queue := []string{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range successors[current] {
			if _, seen := distances[next]; seen {
				continue
			}
			distances[next] = distances[current] + 1
			queue = append(queue, next)
		}
	}
	return distances
}

// Density returns the directed-graph density: edges / (n * (n-1)) for more
// than one node, else 0.
func Density(g *graph.Graph) float64 {
	n := g.NodeCount()
	if n <= 1 {
		return 0
	}
	return float64(g.EdgeCount()) / float64(n*(n-1))
}

// DegreeCentrality maps every entity to (in-degree + out-degree) / (n - 1).
// A graph with a single node yields a zero centrality for it.
func DegreeCentrality(g *graph.Graph) map[string]float64 {
	n := g.NodeCount()
	centrality := make(map[string]float64, n)

	for _, code := range g.NodeCodes() {
		if n <= 1 {
			centrality[code] = 0
			continue
		}
		centrality[code] = float64(g.InDegree(code)+g.OutDegree(code)) / float64(n-1)
	}
	return centrality
}

// Flow summarizes per-entity intercompany transaction volumes.
type Flow struct {
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	Net     float64 `json:"net"`
}

// FlowVolumes maps every entity to its total transaction inflow, outflow
// and net flow, summed over the transaction sub-records of its edges.
func FlowVolumes(g *graph.Graph) map[string]Flow {
	flows := make(map[string]Flow, g.NodeCount())
	for _, code := range g.NodeCodes() {
		flows[code] = Flow{}
	}

	for _, edge := range g.EdgesByKind(graph.KindTransaction) {
		amount := edge.Transaction.Amount

		out := flows[edge.Source]
		out.Outflow += amount
		out.Net -= amount
		flows[edge.Source] = out

		in := flows[edge.Target]
		in.Inflow += amount
		in.Net += amount
		flows[edge.Target] = in
	}
	return flows
}
