package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"corgraph/internal/util"
	"corgraph/pkg/analysis"
	"corgraph/pkg/archetype"
	"corgraph/pkg/graph"
	"corgraph/pkg/logger"
	"corgraph/pkg/logger/console"
	"corgraph/pkg/records"
	recio "corgraph/pkg/records/io"
	recs3 "corgraph/pkg/records/s3"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// groupReport bundles every derived output for one assembled group.
type groupReport struct {
	Group          string                       `json:"group"`
	Nodes          int                          `json:"nodes"`
	Edges          int                          `json:"edges"`
	Density        float64                      `json:"density"`
	HierarchyDepth int                          `json:"hierarchy_depth"`
	Roots          []string                     `json:"roots"`
	Leaves         []string                     `json:"leaves"`
	Centrality     map[string]float64           `json:"centrality"`
	Sizes          map[string]float64           `json:"sizes"`
	Positions      map[string]analysis.Position `json:"positions"`
	Flows          map[string]analysis.Flow     `json:"flows"`
	Tiers          archetype.Assignment         `json:"tiers"`
	Sectors        archetype.Assignment         `json:"sectors"`
	MatrixAxes     archetype.Assignment         `json:"matrix_axes"`
	FranchiseRoles archetype.Assignment         `json:"franchise_roles"`
	FinancialRoles archetype.Assignment         `json:"financial_roles"`
}

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	runID, err := gonanoid.New()
	if err != nil {
		logger.Fatal("Could not create run id", "err", err)
	}
	logger.Info("Starting corporate graph assembly", "run_id", runID)

	baseDir := util.GetEnvString("RECORDS_DIR", ".")

	// Record source: S3 when a bucket is configured, local filesystem
	// otherwise.
	var source records.Source
	if bucket := util.GetEnv("RECORDS_S3_BUCKET"); bucket != "" {
		s3Source, err := recs3.NewS3Source(ctx, recs3.NewS3SourceParams{
			Bucket:    bucket,
			Endpoint:  util.GetEnv("RECORDS_S3_ENDPOINT"),
			Region:    util.GetEnvString("RECORDS_S3_REGION", "us-east-1"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY_ID"),
			SecretKey: util.GetEnv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			logger.Fatal("Could not create S3 record source", "err", err)
		}
		source = s3Source
		logger.Info("Reading records from S3", "bucket", bucket)
	} else {
		source = recio.NewFileSource()
		logger.Info("Reading records from filesystem", "dir", baseDir)
	}

	groups := discoverGroups(baseDir)
	if len(groups) == 0 {
		logger.Fatal("No groups to process; set GROUPS or point RECORDS_DIR at group directories")
	}

	loader := graph.NewLoader(graph.NewLoaderParams{
		Source:         source,
		BaseDir:        baseDir,
		ParallelGroups: util.GetEnvInt("PARALLEL_GROUPS", 4),
	})

	store, err := loader.LoadAll(ctx, groups)
	if err != nil {
		logger.Fatal("Group loading aborted", "err", err)
	}

	sizeAttribute := util.GetEnvString("SIZE_ATTRIBUTE", "revenue")

	reports := make([]groupReport, 0, len(store.Names()))
	for _, name := range store.Names() {
		g, err := store.Get(name)
		if err != nil {
			logger.Fatal("Assembled group disappeared from store", "group", name, "err", err)
		}
		reports = append(reports, buildReport(g, sizeAttribute))
	}

	if err := writeReport(reports); err != nil {
		logger.Fatal("Could not write report", "err", err)
	}

	logger.Info("Run complete", "run_id", runID, "groups", len(reports))
}

// discoverGroups returns group names from the GROUPS env var, falling back
// to the subdirectories of baseDir.
func discoverGroups(baseDir string) []string {
	if raw := util.GetEnv("GROUPS"); raw != "" {
		var groups []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				groups = append(groups, name)
			}
		}
		return groups
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		logger.Warn("Could not list group directories", "dir", baseDir, "err", err)
		return nil
	}

	var groups []string
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}
	return groups
}

func buildReport(g *graph.Graph, sizeAttribute string) groupReport {
	// The tier chain anchors on the top-level entity's display name; the
	// first ownership root provides it.
	topName := ""
	if roots := analysis.OwnershipRoots(g); len(roots) > 0 {
		if node, ok := g.Node(roots[0]); ok {
			topName = node.Name
		}
	}

	return groupReport{
		Group:          g.Group,
		Nodes:          g.NodeCount(),
		Edges:          g.EdgeCount(),
		Density:        analysis.Density(g),
		HierarchyDepth: analysis.HierarchyDepth(g),
		Roots:          analysis.OwnershipRoots(g),
		Leaves:         analysis.OwnershipLeaves(g),
		Centrality:     analysis.DegreeCentrality(g),
		Sizes:          analysis.NodeSizes(g, sizeAttribute),
		Positions:      analysis.HierarchyPositions(g),
		Flows:          analysis.FlowVolumes(g),
		Tiers:          archetype.Tiers(g, topName),
		Sectors:        archetype.Sectors(g),
		MatrixAxes:     archetype.MatrixAxes(g),
		FranchiseRoles: archetype.FranchiseRoles(g),
		FinancialRoles: archetype.FinancialRoles(g),
	}
}

// writeReport emits the JSON report to REPORT_PATH, or stdout when unset.
func writeReport(reports []groupReport) error {
	out := os.Stdout
	if path := util.GetEnv("REPORT_PATH"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}
