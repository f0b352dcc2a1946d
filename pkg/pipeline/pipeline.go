// Package pipeline wires the analysis stages into one batch run:
// load, validate, build, filter, export, summarize.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lorispalmarin/twitch-network/pkg/analysis"
	"github.com/lorispalmarin/twitch-network/pkg/config"
	"github.com/lorispalmarin/twitch-network/pkg/dataset"
	"github.com/lorispalmarin/twitch-network/pkg/export"
	"github.com/lorispalmarin/twitch-network/pkg/graph"
	"github.com/lorispalmarin/twitch-network/pkg/logging"
)

// RunReport collects everything a run learned, for rendering or assertions.
type RunReport struct {
	RunID string

	EdgeRows          int
	FeatureRows       int
	EdgeValidation    dataset.ValidationReport
	FeatureValidation dataset.ValidationReport

	Build graph.BuildReport

	TopLanguages []analysis.LanguageCount

	Language      string
	SubgraphNodes int
	SubgraphEdges int
	Degrees       analysis.DegreeStats
	DegreeP50     int
	DegreeP90     int

	OutputPath string
}

// Run executes the full pipeline described by cfg. Validation findings are
// logged but never abort the run; load and filter errors do.
func Run(cfg *config.Config, logger logging.Logger) (*RunReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	report := &RunReport{
		RunID:      uuid.NewString(),
		Language:   cfg.Language,
		OutputPath: cfg.OutputPath,
	}
	log := logger.With(logging.RunID(report.RunID))
	log.Info("run starting",
		logging.Path(cfg.EdgesPath),
		logging.String("features", cfg.FeaturesPath),
		logging.Language(cfg.Language),
	)

	edges, features, err := loadStage(cfg, log, report)
	if err != nil {
		return nil, err
	}

	validateStage(edges, features, log, report)

	g := buildStage(edges, features, log, report)

	sub, err := filterStage(g, cfg.Language, log, report)
	if err != nil {
		return nil, err
	}

	if err := exportStage(sub, cfg.OutputPath, cfg.Language, log); err != nil {
		return nil, err
	}

	summarizeStage(sub, log, report)

	log.Info("run complete", logging.Path(cfg.OutputPath))
	return report, nil
}

func loadStage(cfg *config.Config, log logging.Logger, report *RunReport) (*dataset.EdgeTable, *dataset.FeatureTable, error) {
	timer := logging.StartTimer(log, "edges loaded", logging.Path(cfg.EdgesPath))
	edges, err := dataset.LoadEdgeTable(cfg.EdgesPath)
	if err != nil {
		timer.EndError(err)
		return nil, nil, fmt.Errorf("load edges: %w", err)
	}
	timer.End(logging.Rows(len(edges.Edges)))

	timer = logging.StartTimer(log, "features loaded", logging.Path(cfg.FeaturesPath))
	features, err := dataset.LoadFeatureTable(cfg.FeaturesPath)
	if err != nil {
		timer.EndError(err)
		return nil, nil, fmt.Errorf("load features: %w", err)
	}
	timer.End(logging.Rows(len(features.Records)))

	report.EdgeRows = len(edges.Edges)
	report.FeatureRows = len(features.Records)
	return edges, features, nil
}

func validateStage(edges *dataset.EdgeTable, features *dataset.FeatureTable, log logging.Logger, report *RunReport) {
	report.EdgeValidation = dataset.Validate(&edges.Table)
	report.FeatureValidation = dataset.Validate(&features.Table)

	for _, v := range []dataset.ValidationReport{report.EdgeValidation, report.FeatureValidation} {
		if v.Clean() {
			log.Info("table clean", logging.Path(v.File), logging.Rows(v.TotalRows))
			continue
		}
		log.Warn("table has quality findings",
			logging.Path(v.File),
			logging.Int("duplicate_rows", v.DuplicateRows),
			logging.Any("null_counts", v.NullCounts),
		)
	}
}

func buildStage(edges *dataset.EdgeTable, features *dataset.FeatureTable, log logging.Logger, report *RunReport) *graph.Graph {
	timer := logging.StartTimer(log, "graph built")
	g, buildReport := graph.Build(edges, features)
	report.Build = buildReport
	timer.End(
		logging.Nodes(buildReport.Nodes),
		logging.Edges(buildReport.Edges),
		logging.Int("self_loops_removed", buildReport.SelfLoopsRemoved),
		logging.Int("duplicate_pairs_merged", buildReport.DuplicatePairsMerged),
		logging.Int("nodes_without_features", buildReport.NodesWithoutFeatures),
	)

	report.TopLanguages = analysis.TopLanguages(g, 10)
	return g
}

func filterStage(g *graph.Graph, language string, log logging.Logger, report *RunReport) (*graph.Graph, error) {
	timer := logging.StartTimer(log, "subgraph extracted", logging.Language(language))
	sub, err := g.InducedByLanguage(language)
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("filter subgraph: %w", err)
	}
	report.SubgraphNodes = sub.NodeCount()
	report.SubgraphEdges = sub.EdgeCount()
	timer.End(logging.Nodes(sub.NodeCount()), logging.Edges(sub.EdgeCount()))
	return sub, nil
}

func exportStage(sub *graph.Graph, path, language string, log logging.Logger) error {
	description := fmt.Sprintf("Twitch friendship subgraph, language=%s", language)
	timer := logging.StartTimer(log, "gexf written", logging.Path(path))
	if err := export.ExportFile(path, sub, description); err != nil {
		timer.EndError(err)
		return fmt.Errorf("export gexf: %w", err)
	}
	timer.End()
	return nil
}

func summarizeStage(sub *graph.Graph, log logging.Logger, report *RunReport) {
	report.Degrees = analysis.Degrees(sub)
	qs := analysis.DegreeQuantiles(sub, 0.5, 0.9)
	report.DegreeP50, report.DegreeP90 = qs[0], qs[1]

	log.Info("degree statistics",
		logging.Int("min", report.Degrees.Min),
		logging.Int("max", report.Degrees.Max),
		logging.Float64("mean", report.Degrees.Mean),
		logging.Int("p50", report.DegreeP50),
		logging.Int("p90", report.DegreeP90),
	)
}
