package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorispalmarin/twitch-network/pkg/config"
	"github.com/lorispalmarin/twitch-network/pkg/logging"
	"github.com/lorispalmarin/twitch-network/pkg/pipeline"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9146FF")). // Twitch purple
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9146FF")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)
)

func main() {
	configFile := flag.String("config", "", "Path to YAML run configuration")
	edgesFile := flag.String("edges", "", "Path to the edge CSV (overrides config)")
	featuresFile := flag.String("features", "", "Path to the feature CSV (overrides config)")
	language := flag.String("language", "", "Broadcast language code to filter on (overrides config)")
	output := flag.String("out", "", "GEXF output path (overrides config)")
	flag.Parse()

	cfg, err := resolveConfig(*configFile, *edgesFile, *featuresFile, *language, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "twitchnet: %v\n", err)
		os.Exit(1)
	}
	if cfg.EdgesPath == "" || cfg.FeaturesPath == "" || cfg.Language == "" {
		usage()
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	report, err := pipeline.Run(cfg, logger)
	if err != nil {
		logger.Error("run failed", logging.Error(err))
		os.Exit(1)
	}

	fmt.Println(renderSummary(report))
}

// resolveConfig merges the optional config file with flag overrides
func resolveConfig(configFile, edges, features, language, output string) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if edges != "" {
		cfg.EdgesPath = edges
	}
	if features != "" {
		cfg.FeaturesPath = features
	}
	if language != "" {
		cfg.Language = language
	}
	if output != "" {
		cfg.OutputPath = output
	}
	return cfg, nil
}

func usage() {
	fmt.Println("Usage: twitchnet --edges edges.csv --features features.csv --language FR [--out subgraph.gexf]")
	fmt.Println("       twitchnet --config run.yaml")
	fmt.Println()
	fmt.Println("Download the Twitch gamers dataset from:")
	fmt.Println("  https://snap.stanford.edu/data/twitch_gamers.html")
}

func renderSummary(report *pipeline.RunReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Twitch friendship network"))
	b.WriteString("\n")

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-24s", label)) + valueStyle.Render(value)
	}

	lines := []string{
		row("edge rows", fmt.Sprintf("%d", report.EdgeRows)),
		row("feature rows", fmt.Sprintf("%d", report.FeatureRows)),
		row("graph", fmt.Sprintf("%d nodes / %d edges", report.Build.Nodes, report.Build.Edges)),
		row("self-loops removed", fmt.Sprintf("%d", report.Build.SelfLoopsRemoved)),
		row("duplicate pairs merged", fmt.Sprintf("%d", report.Build.DuplicatePairsMerged)),
		row(fmt.Sprintf("subgraph (%s)", report.Language),
			fmt.Sprintf("%d nodes / %d edges", report.SubgraphNodes, report.SubgraphEdges)),
		row("degree min/mean/max",
			fmt.Sprintf("%d / %.2f / %d", report.Degrees.Min, report.Degrees.Mean, report.Degrees.Max)),
		row("degree p50/p90", fmt.Sprintf("%d / %d", report.DegreeP50, report.DegreeP90)),
		row("output", report.OutputPath),
	}

	if len(report.TopLanguages) > 0 {
		top := make([]string, 0, len(report.TopLanguages))
		for _, lc := range report.TopLanguages {
			top = append(top, fmt.Sprintf("%s:%d", lc.Language, lc.Nodes))
		}
		lines = append(lines, row("top languages", strings.Join(top, "  ")))
	}

	b.WriteString(statsBoxStyle.Render(strings.Join(lines, "\n")))
	return b.String()
}
