package graph

import (
	"corgraph/pkg/logger"
	"corgraph/pkg/records"
)

// Column names of the four record sets.
const (
	colEntityCode     = "Legal Entity Code"
	colEntityName     = "Entity Name"
	colEntityType     = "Entity Type"
	colCountry        = "Country Of Incorporation"
	colRegion         = "Region"
	colLineOfBusiness = "Line Of Business"
	colComplexity     = "Complexity"
	colDescriptor     = "Descriptor"
	colEffectiveDate  = "Effective Date"
	colJurisdiction   = "Jurisdiction"
	colLocalCurrency  = "Local Currency"
	colFuncCurrency   = "Functional Currency"
	colRepCurrency    = "Reporting Currency"

	colOwnerCode     = "Owner Entity Code"
	colOwnedCode     = "Owned Entity Code"
	colPercentOwned  = "Percent Owned"
	colShareClass    = "Share Class"
	colOwnershipType = "Ownership Type"
	colEntryDate     = "Entry As Shareholder Date"

	colCreditorCode    = "Creditor Entity Code"
	colDebtorCode      = "Debtor Entity Code"
	colPrincipalAmount = "Principal Amount"
	colTransactionType = "Transaction Type"
	colCurrency        = "Currency"
	colInterestRate    = "Interest Rate"
	colPurpose         = "Purpose"
	colStatus          = "Status"

	colAttrEntityCode = "Entity Code"
	colAttrName       = "Attribute Name"
	colAttrValue      = "Attribute Value"
	colAttrValueType  = "Value Type"
	colAttrCategory   = "Category"
)

// Assemble builds the directed graph of one corporate group from its four
// record sets. Missing sets simply contribute nothing, and individual bad
// rows are absorbed with safe defaults so one dirty record never aborts the
// group.
func Assemble(group string, sets records.Sets) *Graph {
	g := NewGraph(group)

	addRosterNodes(g, sets.Roster)
	addOwnershipEdges(g, sets.Ownership)
	addTransactionEdges(g, sets.Transactions)
	mergeAttributes(g, sets.Attributes)

	logger.Info("Assembled group graph",
		"group", group,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)

	return g
}

// addRosterNodes creates one node per roster row. Rows with a blank entity
// code are skipped; a repeated code overwrites the earlier node.
func addRosterNodes(g *Graph, rows []records.Row) {
	for _, row := range rows {
		code := row.Get(colEntityCode)
		if code == "" {
			continue
		}

		g.setNode(&Entity{
			Code:               code,
			Name:               row.Get(colEntityName),
			Type:               row.Get(colEntityType),
			Country:            row.Get(colCountry),
			Region:             row.Get(colRegion),
			LineOfBusiness:     row.Get(colLineOfBusiness),
			Complexity:         row.Get(colComplexity),
			Descriptor:         row.Get(colDescriptor),
			EffectiveDate:      ParseDate(row.Get(colEffectiveDate)),
			Group:              g.Group,
			Jurisdiction:       row.Get(colJurisdiction),
			LocalCurrency:      row.Get(colLocalCurrency),
			FunctionalCurrency: row.Get(colFuncCurrency),
			ReportingCurrency:  row.Get(colRepCurrency),
		})
	}
}

// addOwnershipEdges adds one directed owner→owned edge per ownership row.
// A blank owner code marks an external, untracked shareholder and the row
// is skipped; rows referencing codes absent from the roster are dropped.
func addOwnershipEdges(g *Graph, rows []records.Row) {
	for _, row := range rows {
		owner := row.Get(colOwnerCode)
		if owner == "" {
			continue
		}
		owned := row.Get(colOwnedCode)
		if owned == "" {
			continue
		}
		if !g.HasNode(owner) || !g.HasNode(owned) {
			logger.Debug("Dropping ownership record with unknown endpoint",
				"group", g.Group, "owner", owner, "owned", owned)
			continue
		}

		edge := g.edgeFor(owner, owned)
		edge.Ownership = &OwnershipDetails{
			PercentOwned:  ParsePercent(row.Get(colPercentOwned)),
			ShareClass:    row.Get(colShareClass),
			OwnershipType: row.Get(colOwnershipType),
			EntryDate:     ParseDate(row.Get(colEntryDate)),
		}
		edge.applyKind(KindOwnership)
	}
}

// addTransactionEdges adds one directed creditor→debtor edge per
// transaction row. Rows with either endpoint blank or unknown are dropped.
// When the ordered pair already carries an ownership edge, the transaction
// details are merged onto that edge instead of creating a second one.
func addTransactionEdges(g *Graph, rows []records.Row) {
	for _, row := range rows {
		creditor := row.Get(colCreditorCode)
		debtor := row.Get(colDebtorCode)
		if creditor == "" || debtor == "" {
			continue
		}
		if !g.HasNode(creditor) || !g.HasNode(debtor) {
			logger.Debug("Dropping transaction record with unknown endpoint",
				"group", g.Group, "creditor", creditor, "debtor", debtor)
			continue
		}

		edge := g.edgeFor(creditor, debtor)
		edge.Transaction = &TransactionDetails{
			Type:         row.Get(colTransactionType),
			Amount:       ParseAmount(row.Get(colPrincipalAmount)),
			Currency:     row.Get(colCurrency),
			InterestRate: row.Get(colInterestRate),
			Purpose:      row.Get(colPurpose),
			Status:       row.Get(colStatus),
		}
		edge.applyKind(KindTransaction)
	}
}

// mergeAttributes inserts attribute rows into the referenced node's
// attribute bag, last write per attribute name winning. Rows referencing a
// code with no node are dropped without error.
func mergeAttributes(g *Graph, rows []records.Row) {
	for _, row := range rows {
		code := row.Get(colAttrEntityCode)
		node, ok := g.Node(code)
		if !ok {
			continue
		}

		name := row.Get(colAttrName)
		if name == "" {
			continue
		}

		valueType := row.Get(colAttrValueType)
		if valueType == "" {
			valueType = "Text"
		}
		category := row.Get(colAttrCategory)
		if category == "" {
			category = "General"
		}

		if node.Attributes == nil {
			node.Attributes = make(map[string]Attribute)
		}
		node.Attributes[name] = Attribute{
			Value:    row.Get(colAttrValue),
			Type:     valueType,
			Category: category,
		}
	}
}
