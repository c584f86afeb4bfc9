package archetype

import (
	"reflect"
	"testing"

	"corgraph/pkg/graph"
	"corgraph/pkg/records"
)

func buildFinancialGraph(ownership []ownershipPair, transactions []records.Row, codes ...string) *graph.Graph {
	var sets records.Sets
	for _, code := range codes {
		sets.Roster = append(sets.Roster, records.Row{
			"Legal Entity Code": code,
			"Entity Name":       code,
		})
	}
	for _, pair := range ownership {
		sets.Ownership = append(sets.Ownership, records.Row{
			"Owner Entity Code": pair.owner,
			"Owned Entity Code": pair.owned,
			"Percent Owned":     "100%",
		})
	}
	sets.Transactions = transactions
	return graph.Assemble("TestGroup", sets)
}

func TestFinancialRoles(t *testing.T) {
	g := buildFinancialGraph(
		[]ownershipPair{
			{owner: "HQ", owned: "S1"},
			{owner: "HQ", owned: "S2"},
			{owner: "HQ", owned: "S3"},
			{owner: "HQ", owned: "S4"},
		},
		[]records.Row{
			{
				"Creditor Entity Code": "S2",
				"Debtor Entity Code":   "S1",
				"Principal Amount":     "2,000,000,000",
			},
		},
		"HQ", "S1", "S2", "S3", "S4", "LONER",
	)

	got := FinancialRoles(g)
	want := Assignment{
		RoleParent:     {"HQ"},
		RoleNetInflow:  {"S1"},
		RoleNetOutflow: {"S2"},
		RoleSubsidiary: {"S3", "S4"},
		RoleNeutral:    {"LONER"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected financial roles:\ngot  %v\nwant %v", got, want)
	}
}

func TestFinancialRolesFlowOutranksOwnershipShape(t *testing.T) {
	// A parent with many subsidiaries still counts as a net provider of
	// funds when its outflow is significant.
	g := buildFinancialGraph(
		[]ownershipPair{
			{owner: "HQ", owned: "S1"},
			{owner: "HQ", owned: "S2"},
			{owner: "HQ", owned: "S3"},
			{owner: "HQ", owned: "S4"},
		},
		[]records.Row{
			{
				"Creditor Entity Code": "HQ",
				"Debtor Entity Code":   "S1",
				"Principal Amount":     "5,000,000,000",
			},
		},
		"HQ", "S1", "S2", "S3", "S4",
	)

	got := FinancialRoles(g)
	if !reflect.DeepEqual(got[RoleNetOutflow], []string{"HQ"}) {
		t.Fatalf("expected net outflow to win over parent shape: %v", got)
	}
	if !reflect.DeepEqual(got[RoleNetInflow], []string{"S1"}) {
		t.Fatalf("expected S1 as net receiver: %v", got)
	}
}
