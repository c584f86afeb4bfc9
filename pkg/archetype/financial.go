package archetype

import (
	"corgraph/pkg/analysis"
	"corgraph/pkg/graph"
)

// Financial position roles.
const (
	RoleNetInflow  Role = "Net Inflow"
	RoleNetOutflow Role = "Net Outflow"
	RoleParent     Role = "Parent"
	RoleSubsidiary Role = "Subsidiary"
	RoleNeutral    Role = "Neutral"
)

// significantFlow is the net transaction volume beyond which an entity
// counts as a major capital source or sink.
const significantFlow = 1e9

// FinancialRoles buckets every entity by its financial position in the
// group: major net receivers and providers of intercompany funding first,
// then ownership shape (parents holding more than three subsidiaries,
// terminal subsidiaries), defaulting to Neutral.
func FinancialRoles(g *graph.Graph) Assignment {
	flows := analysis.FlowVolumes(g)

	subsidiaries := make(map[string]int)
	parents := make(map[string]int)
	for _, edge := range g.EdgesByKind(graph.KindOwnership) {
		subsidiaries[edge.Source]++
		parents[edge.Target]++
	}

	assignment := make(Assignment)
	for _, code := range g.NodeCodes() {
		net := flows[code].Net

		switch {
		case net > significantFlow:
			assignment.add(RoleNetInflow, code)
		case net < -significantFlow:
			assignment.add(RoleNetOutflow, code)
		case subsidiaries[code] > 3:
			assignment.add(RoleParent, code)
		case parents[code] > 0 && subsidiaries[code] == 0:
			assignment.add(RoleSubsidiary, code)
		default:
			assignment.add(RoleNeutral, code)
		}
	}
	return assignment.sorted()
}
