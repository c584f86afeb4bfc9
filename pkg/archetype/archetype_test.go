package archetype

import (
	"reflect"
	"testing"

	"corgraph/pkg/graph"
	"corgraph/pkg/records"
)

type entitySpec struct {
	code string
	name string
	typ  string
}

type ownershipPair struct {
	owner string
	owned string
}

func buildGraph(entities []entitySpec, ownership []ownershipPair) *graph.Graph {
	var sets records.Sets
	for _, e := range entities {
		sets.Roster = append(sets.Roster, records.Row{
			"Legal Entity Code": e.code,
			"Entity Name":       e.name,
			"Entity Type":       e.typ,
		})
	}
	for _, pair := range ownership {
		sets.Ownership = append(sets.Ownership, records.Row{
			"Owner Entity Code": pair.owner,
			"Owned Entity Code": pair.owned,
			"Percent Owned":     "100%",
		})
	}
	return graph.Assemble("TestGroup", sets)
}

func TestTiers(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "TOP", name: "TechNova Inc", typ: "Corporation"},
		{code: "RH1", name: "TechNova Europe Holding B.V.", typ: "B.V."},
		{code: "RH2", name: "TechNova Asia", typ: "Holdings Company"},
		{code: "OP1", name: "TechNova UK Ltd", typ: "Limited Company"},
		{code: "OP2", name: "TechNova Deutschland GmbH", typ: "GmbH"},
		{code: "OP3", name: "TechNova Services", typ: "Operations Subsidiary"},
		{code: "SP1", name: "TechNova IP Vault", typ: "Corporation"},
	}, nil)

	got := Tiers(g, "TechNova Inc")
	want := Assignment{
		RoleUltimateParent:    {"TOP"},
		RoleRegionalHolding:   {"RH1", "RH2"},
		RoleCountryOperation:  {"OP1", "OP2", "OP3"},
		RoleSpecializedEntity: {"SP1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tiers:\ngot  %v\nwant %v", got, want)
	}
}

func TestTiersFirstMatchWins(t *testing.T) {
	// The name carries both the top-level name and a holding marker; the
	// ultimate-parent predicate sits higher in the chain and wins.
	g := buildGraph([]entitySpec{
		{code: "A", name: "Omni Holding Inc", typ: "Corporation"},
	}, nil)

	got := Tiers(g, "Omni Holding Inc")
	if !reflect.DeepEqual(got[RoleUltimateParent], []string{"A"}) {
		t.Fatalf("expected ultimate parent, got %v", got)
	}
	if len(got[RoleRegionalHolding]) != 0 {
		t.Fatalf("node classified twice: %v", got)
	}
}

func TestSectors(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "P", name: "GlobalVentures Corp", typ: "Corporation"},
		{code: "INS", name: "GV Reinsurance Ltd", typ: "Corporation"},
		{code: "TRN", name: "GV Rail Logistics", typ: "Corporation"},
		{code: "ENG", name: "GV Power Utilities", typ: "Corporation"},
		{code: "MFG", name: "GV Industrial Works", typ: "Corporation"},
		{code: "RET", name: "GV Consumer Goods", typ: "Corporation"},
		{code: "OTH", name: "GV Ventures Lab", typ: "Corporation"},
	}, []ownershipPair{
		{owner: "P", owned: "INS"},
		{owner: "P", owned: "TRN"},
		{owner: "P", owned: "ENG"},
		{owner: "P", owned: "MFG"},
		{owner: "P", owned: "RET"},
		{owner: "P", owned: "OTH"},
	})

	got := Sectors(g)
	want := Assignment{
		RoleInsurance:      {"INS"},
		RoleTransportation: {"TRN"},
		RoleEnergy:         {"ENG"},
		RoleManufacturing:  {"MFG"},
		RoleRetail:         {"RET"},
		RoleOtherSector:    {"OTH"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sectors:\ngot  %v\nwant %v", got, want)
	}

	// The apex itself must not appear in any bucket.
	for role, codes := range got {
		for _, code := range codes {
			if code == "P" {
				t.Fatalf("apex bucketed under %s", role)
			}
		}
	}
}

func TestSectorsPriorityOrder(t *testing.T) {
	// "insurance" outranks "rail" in the fixed priority order.
	g := buildGraph([]entitySpec{
		{code: "P", name: "Apex", typ: "Corporation"},
		{code: "X", name: "Rail Insurance Partners", typ: "Corporation"},
	}, []ownershipPair{{owner: "P", owned: "X"}})

	got := Sectors(g)
	if !reflect.DeepEqual(got[RoleInsurance], []string{"X"}) {
		t.Fatalf("expected insurance to win: %v", got)
	}
	if len(got[RoleTransportation]) != 0 {
		t.Fatalf("node bucketed twice: %v", got)
	}
}

func TestMatrixAxes(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "HQ", name: "ConsumerBrands Inc", typ: "Corporation"},
		{code: "BR", name: "CB Beauty Care Brands", typ: "Corporation"},
		{code: "GEO", name: "CB Europe Region", typ: "Corporation"},
		{code: "CF", name: "CB Treasury Services", typ: "Corporation"},
	}, []ownershipPair{
		{owner: "HQ", owned: "BR"},
		{owner: "HQ", owned: "GEO"},
		{owner: "HQ", owned: "CF"},
	})

	got := MatrixAxes(g)
	want := Assignment{
		RoleMatrixParent: {"HQ"},
		RoleBrand:        {"BR"},
		RoleGeographic:   {"GEO"},
		RoleCorporate:    {"CF"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected matrix axes:\ngot  %v\nwant %v", got, want)
	}
}

func TestMatrixAxesBrandOutranksGeography(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "HQ", name: "Apex", typ: "Corporation"},
		{code: "X", name: "Europe Brand Collective", typ: "Corporation"},
	}, []ownershipPair{{owner: "HQ", owned: "X"}})

	got := MatrixAxes(g)
	if !reflect.DeepEqual(got[RoleBrand], []string{"X"}) {
		t.Fatalf("expected brand to win: %v", got)
	}
	if len(got[RoleGeographic]) != 0 {
		t.Fatalf("node bucketed twice: %v", got)
	}
}

func TestFranchiseRoles(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "HQ", name: "GlobalBeverage Company", typ: "Corporation"},
		{code: "CON", name: "GB Concentrate Operations", typ: "Corporation"},
		{code: "BOT", name: "GB Bottling Partners", typ: "Corporation"},
		{code: "REG", name: "GB North America", typ: "Corporation"},
		{code: "SUP", name: "GB Marketing Services", typ: "Corporation"},
		{code: "MISC", name: "GB Pension Trust", typ: "Trust"},
	}, []ownershipPair{
		{owner: "HQ", owned: "CON"},
		{owner: "HQ", owned: "BOT"},
		{owner: "HQ", owned: "REG"},
		{owner: "HQ", owned: "SUP"},
		{owner: "HQ", owned: "MISC"},
	})

	got := FranchiseRoles(g)
	want := Assignment{
		RoleHQ:          {"HQ"},
		RoleConcentrate: {"CON"},
		RoleBottling:    {"BOT"},
		RoleRegional:    {"REG"},
		RoleSupport:     {"SUP"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected franchise roles:\ngot  %v\nwant %v", got, want)
	}

	// MISC matches no predicate and must be absent from every bucket.
	for role, codes := range got {
		for _, code := range codes {
			if code == "MISC" {
				t.Fatalf("unmatched node bucketed under %s", role)
			}
		}
	}
}

func TestFranchiseRegionTokensAreCaseSensitive(t *testing.T) {
	g := buildGraph([]entitySpec{
		{code: "HQ", name: "Apex", typ: "Corporation"},
		{code: "X", name: "gb north america", typ: "Corporation"},
	}, []ownershipPair{{owner: "HQ", owned: "X"}})

	got := FranchiseRoles(g)
	if len(got[RoleRegional]) != 0 {
		t.Fatalf("lowercased region name must not match the region tokens: %v", got)
	}
}
