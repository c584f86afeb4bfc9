// Package archetype assigns entities to structural roles using ordered
// predicate chains over entity names and types. Each classifier walks its
// chain top-down and the first matching predicate wins, keeping tie-break
// behavior auditable in isolation from graph traversal. Classifiers read
// the graph and return role→codes tables; they never mutate it.
package archetype

import (
	"sort"
	"strings"

	"corgraph/pkg/graph"
)

// Role is a structural role assigned to an entity by a classifier.
type Role string

// Hierarchy tier roles.
const (
	RoleUltimateParent    Role = "Ultimate Parent"
	RoleRegionalHolding   Role = "Regional Holdings"
	RoleCountryOperation  Role = "Country Operations"
	RoleSpecializedEntity Role = "Specialized Entities"
)

// Portfolio sector roles.
const (
	RoleInsurance      Role = "Insurance"
	RoleTransportation Role = "Transportation"
	RoleEnergy         Role = "Energy"
	RoleManufacturing  Role = "Manufacturing"
	RoleRetail         Role = "Retail"
	RoleOtherSector    Role = "Other"
)

// Matrix axis roles.
const (
	RoleMatrixParent Role = "Parent"
	RoleBrand        Role = "Brand"
	RoleGeographic   Role = "Geographic"
	RoleCorporate    Role = "Corporate"
)

// Franchise roles.
const (
	RoleHQ          Role = "HQ"
	RoleConcentrate Role = "Concentrate"
	RoleBottling    Role = "Bottling"
	RoleRegional    Role = "Regional"
	RoleSupport     Role = "Support"
)

// Assignment maps each role to the sorted codes of the entities holding it.
type Assignment map[Role][]string

func (a Assignment) add(role Role, code string) {
	a[role] = append(a[role], code)
}

func (a Assignment) sorted() Assignment {
	for _, codes := range a {
		sort.Strings(codes)
	}
	return a
}

// rule pairs one predicate with the role assigned on match.
type rule struct {
	match func(node *graph.Entity) bool
	role  Role
}

// chain is an ordered predicate list evaluated top-down, first match wins.
type chain []rule

func (c chain) classify(node *graph.Entity) (Role, bool) {
	for _, r := range c {
		if r.match(node) {
			return r.role, true
		}
	}
	return "", false
}

func nameContainsAny(node *graph.Entity, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(node.Name, token) {
			return true
		}
	}
	return false
}

func nameContainsAnyFold(node *graph.Entity, keywords []string) bool {
	name := strings.ToLower(node.Name)
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// apexCodes returns the codes of all in-degree-0 nodes, ascending.
func apexCodes(g *graph.Graph) []string {
	var apexes []string
	for _, code := range g.NodeCodes() {
		if g.InDegree(code) == 0 {
			apexes = append(apexes, code)
		}
	}
	return apexes
}

// Tiers buckets every entity into one of four hierarchy tiers. topName is
// the display name of the group's top-level entity; an entity whose name
// contains it is the ultimate parent. The remaining predicates look for
// holding markers, then operating-company markers (an "Operations" type or
// a country-suffix token in the name), and everything else is a
// specialized entity.
func Tiers(g *graph.Graph, topName string) Assignment {
	countrySuffixes := []string{"Ltd", "GmbH", "SAS", "K.K."}

	tierChain := chain{
		{role: RoleUltimateParent, match: func(n *graph.Entity) bool {
			return topName != "" && strings.Contains(n.Name, topName)
		}},
		{role: RoleRegionalHolding, match: func(n *graph.Entity) bool {
			return strings.Contains(n.Type, "Holdings") || strings.Contains(n.Name, "Holding")
		}},
		{role: RoleCountryOperation, match: func(n *graph.Entity) bool {
			return strings.Contains(n.Type, "Operations") || nameContainsAny(n, countrySuffixes)
		}},
		{role: RoleSpecializedEntity, match: func(n *graph.Entity) bool {
			return true
		}},
	}

	assignment := make(Assignment)
	for _, node := range g.Nodes() {
		if role, ok := tierChain.classify(node); ok {
			assignment.add(role, node.Code)
		}
	}
	return assignment.sorted()
}

// Sectors buckets every entity except the portfolio apex (the first
// in-degree-0 node) into a business sector by case-insensitive name
// keywords, checked in fixed priority order; entities matching no sector
// keyword fall into Other.
func Sectors(g *graph.Graph) Assignment {
	sectorChain := chain{
		{role: RoleInsurance, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"insurance", "reinsurance", "underwriting"})
		}},
		{role: RoleTransportation, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"transport", "rail", "logistics"})
		}},
		{role: RoleEnergy, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"energy", "power", "utilities"})
		}},
		{role: RoleManufacturing, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"manufacturing", "industrial"})
		}},
		{role: RoleRetail, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"retail", "consumer"})
		}},
		{role: RoleOtherSector, match: func(n *graph.Entity) bool {
			return true
		}},
	}

	apex := ""
	if apexes := apexCodes(g); len(apexes) > 0 {
		apex = apexes[0]
	}

	assignment := make(Assignment)
	for _, node := range g.Nodes() {
		if node.Code == apex {
			continue
		}
		if role, ok := sectorChain.classify(node); ok {
			assignment.add(role, node.Code)
		}
	}
	return assignment.sorted()
}

// MatrixAxes buckets entities into the three axes of a matrix
// organization. Every in-degree-0 node is the designated parent; the rest
// are tested against brand keywords, then geography keywords, and default
// to Corporate.
func MatrixAxes(g *graph.Graph) Assignment {
	matrixChain := chain{
		{role: RoleBrand, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"brand", "product", "beauty", "care", "home"})
		}},
		{role: RoleGeographic, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"europe", "america", "asia", "africa", "region"})
		}},
		{role: RoleCorporate, match: func(n *graph.Entity) bool {
			return true
		}},
	}

	assignment := make(Assignment)
	for _, node := range g.Nodes() {
		if g.InDegree(node.Code) == 0 {
			assignment.add(RoleMatrixParent, node.Code)
			continue
		}
		if role, ok := matrixChain.classify(node); ok {
			assignment.add(role, node.Code)
		}
	}
	return assignment.sorted()
}

// FranchiseRoles buckets entities into the roles of a franchise beverage
// model. Every in-degree-0 node is HQ; the rest are tested for concentrate
// and bottling name markers, then region-name tokens, then support-function
// tokens. Entities matching no predicate are deliberately left out of every
// bucket.
func FranchiseRoles(g *graph.Graph) Assignment {
	regionTokens := []string{"North America", "Europe", "Asia", "Latin America", "EMEA"}
	supportTokens := []string{"Marketing", "Supply Chain", "IP", "Innovation"}

	franchiseChain := chain{
		{role: RoleConcentrate, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"concentrate", "formula"})
		}},
		{role: RoleBottling, match: func(n *graph.Entity) bool {
			return nameContainsAnyFold(n, []string{"bottling"})
		}},
		{role: RoleRegional, match: func(n *graph.Entity) bool {
			return nameContainsAny(n, regionTokens)
		}},
		{role: RoleSupport, match: func(n *graph.Entity) bool {
			return nameContainsAny(n, supportTokens)
		}},
	}

	assignment := make(Assignment)
	for _, node := range g.Nodes() {
		if g.InDegree(node.Code) == 0 {
			assignment.add(RoleHQ, node.Code)
			continue
		}
		if role, ok := franchiseChain.classify(node); ok {
			assignment.add(role, node.Code)
		}
	}
	return assignment.sorted()
}
