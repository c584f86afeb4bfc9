package graph

import (
	"sort"
	"time"
)

// EdgeKind identifies the semantic kind of a relationship between two
// entities.
type EdgeKind string

const (
	KindOwnership   EdgeKind = "ownership"
	KindTransaction EdgeKind = "transaction"
)

// Attribute is one named fact in an entity's attribute bag beyond the fixed
// roster schema.
type Attribute struct {
	Value    string `json:"value"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// Entity represents a legal/organizational unit as a node in the group
// graph. Fixed fields come from the entity roster; the Attributes bag
// accumulates open-ended facts from the attribute record set, last write
// per attribute name winning.
type Entity struct {
	Code               string               `json:"code"`
	Name               string               `json:"name"`
	Type               string               `json:"type"`
	Country            string               `json:"country"`
	Region             string               `json:"region"`
	LineOfBusiness     string               `json:"line_of_business"`
	Complexity         string               `json:"complexity"`
	Descriptor         string               `json:"descriptor"`
	EffectiveDate      time.Time            `json:"effective_date"`
	Group              string               `json:"group"`
	Jurisdiction       string               `json:"jurisdiction"`
	LocalCurrency      string               `json:"local_currency"`
	FunctionalCurrency string               `json:"functional_currency"`
	ReportingCurrency  string               `json:"reporting_currency"`
	Attributes         map[string]Attribute `json:"attributes,omitempty"`
}

// OwnershipDetails carries the ownership-specific fields of an edge.
type OwnershipDetails struct {
	PercentOwned  float64   `json:"percent_owned"`
	ShareClass    string    `json:"share_class"`
	OwnershipType string    `json:"ownership_type"`
	EntryDate     time.Time `json:"entry_date"`
}

// TransactionDetails carries the transaction-specific fields of an edge.
type TransactionDetails struct {
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	InterestRate string  `json:"interest_rate"`
	Purpose      string  `json:"purpose"`
	Status       string  `json:"status"`
}

// Edge is the single directed relationship between an ordered pair of
// entities within a group. An edge carries a set of kind tags together with
// distinct per-kind detail records, so a pair connected by both an ownership
// stake and a transaction keeps both sets of fields in full.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Group  string `json:"group"`

	// kinds holds the kind tags in application order; the last element is
	// the most recently applied record kind.
	kinds []EdgeKind

	Ownership   *OwnershipDetails   `json:"ownership,omitempty"`
	Transaction *TransactionDetails `json:"transaction,omitempty"`
}

// HasKind reports whether the edge carries the given kind tag.
func (e *Edge) HasKind(kind EdgeKind) bool {
	for _, k := range e.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Kind returns the most recently applied kind tag. For an edge produced by
// a single record kind this is that kind; for a merged edge it is whichever
// record was written last.
func (e *Edge) Kind() EdgeKind {
	if len(e.kinds) == 0 {
		return ""
	}
	return e.kinds[len(e.kinds)-1]
}

// Kinds returns the edge's kind tags in application order.
func (e *Edge) Kinds() []EdgeKind {
	out := make([]EdgeKind, len(e.kinds))
	copy(out, e.kinds)
	return out
}

func (e *Edge) applyKind(kind EdgeKind) {
	for i, k := range e.kinds {
		if k == kind {
			e.kinds = append(append(e.kinds[:i], e.kinds[i+1:]...), kind)
			return
		}
	}
	e.kinds = append(e.kinds, kind)
}

type edgeKey struct {
	source string
	target string
}

// Graph is the assembled directed graph of one corporate group. Nodes and
// edges are owned by the assembler; analytics and classifiers read the
// graph but never mutate it.
type Graph struct {
	Group string

	nodes map[string]*Entity
	edges map[edgeKey]*Edge
}

// NewGraph creates an empty graph for the named group.
func NewGraph(group string) *Graph {
	return &Graph{
		Group: group,
		nodes: make(map[string]*Entity),
		edges: make(map[edgeKey]*Edge),
	}
}

// NodeCount returns the number of entities in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph. Merged edges count
// once.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the entity with the given code.
func (g *Graph) Node(code string) (*Entity, bool) {
	node, ok := g.nodes[code]
	return node, ok
}

// HasNode reports whether an entity with the given code exists.
func (g *Graph) HasNode(code string) bool {
	_, ok := g.nodes[code]
	return ok
}

// Nodes returns all entities sorted by code.
func (g *Graph) Nodes() []*Entity {
	codes := g.NodeCodes()
	nodes := make([]*Entity, 0, len(codes))
	for _, code := range codes {
		nodes = append(nodes, g.nodes[code])
	}
	return nodes
}

// NodeCodes returns all entity codes in ascending order.
func (g *Graph) NodeCodes() []string {
	codes := make([]string, 0, len(g.nodes))
	for code := range g.nodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Edge returns the edge for the ordered pair (source, target).
func (g *Graph) Edge(source, target string) (*Edge, bool) {
	edge, ok := g.edges[edgeKey{source: source, target: target}]
	return edge, ok
}

// Edges returns all edges sorted by (source, target).
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, edge := range g.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// EdgesByKind returns all edges carrying the given kind tag, sorted by
// (source, target).
func (g *Graph) EdgesByKind(kind EdgeKind) []*Edge {
	var edges []*Edge
	for _, edge := range g.Edges() {
		if edge.HasKind(kind) {
			edges = append(edges, edge)
		}
	}
	return edges
}

// InDegree returns the number of edges pointing at the entity.
func (g *Graph) InDegree(code string) int {
	count := 0
	for key := range g.edges {
		if key.target == code {
			count++
		}
	}
	return count
}

// OutDegree returns the number of edges leaving the entity.
func (g *Graph) OutDegree(code string) int {
	count := 0
	for key := range g.edges {
		if key.source == code {
			count++
		}
	}
	return count
}

func (g *Graph) setNode(node *Entity) {
	g.nodes[node.Code] = node
}

func (g *Graph) edgeFor(source, target string) *Edge {
	key := edgeKey{source: source, target: target}
	edge, ok := g.edges[key]
	if !ok {
		edge = &Edge{
			Source: source,
			Target: target,
			Group:  g.Group,
		}
		g.edges[key] = edge
	}
	return edge
}
