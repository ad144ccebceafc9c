// cmd/stagescrapexter/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/valpere/StageScrapexter/internal/api"
	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/internal/ensemble"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/output"
	"github.com/valpere/StageScrapexter/internal/scraper"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
	"gopkg.in/yaml.v3"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// runAggregator executes a full aggregation run and writes the snapshot.
func runAggregator(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := utils.ParseLogLevel(cfg.LogLevel)
	if hasFlag("-v") || hasFlag("--verbose") {
		level = utils.DebugLevel
	}
	logger := utils.NewLoggerWithLevel(level)

	metrics := monitoring.NewMetrics()

	engine, err := scraper.NewEngine(cfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	manager, err := output.NewManager(&cfg.Output, logger, metrics)
	if err != nil {
		return fmt.Errorf("failed to create output manager: %w", err)
	}
	defer manager.Close()

	ctx := context.Background()

	snapshot, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	if err := manager.Write(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	fmt.Printf("Aggregation complete: %d productions saved to %s\n", snapshot.Meta.Count, cfg.Output.File)
	return nil
}

// validateConfigFile loads and validates a configuration file.
func validateConfigFile(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}

	if hasFlag("-v") || hasFlag("--verbose") {
		fmt.Printf("Configuration details:\n")
		fmt.Printf("  Name: %s\n", cfg.Name)
		fmt.Printf("  Base URL: %s\n", cfg.BaseURL)
		fmt.Printf("  Sources: %d\n", len(cfg.Sources))
		fmt.Printf("  Snapshot file: %s\n", cfg.Output.File)
	}

	fmt.Printf("✓ Configuration file '%s' is valid\n", configFile)
	return nil
}

// generateTemplate renders a starter configuration as YAML.
func generateTemplate() (string, error) {
	template := config.GenerateTemplate()

	yamlData, err := yaml.Marshal(template)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template to YAML: %w", err)
	}

	return string(yamlData), nil
}

// reshapeSnapshot converts a snapshot file into the downstream document
// shape consumed by the website backend.
func reshapeSnapshot(snapshotFile, outFile string) error {
	data, err := os.ReadFile(snapshotFile)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	doc := ensemble.Reshape(&snapshot)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reshaped document: %w", err)
	}

	if err := os.WriteFile(outFile, out, 0644); err != nil {
		return fmt.Errorf("failed to write reshaped document: %w", err)
	}

	fmt.Printf("Reshaped %d productions into %s\n", len(doc.Items), outFile)
	return nil
}

// serveSnapshot starts the snapshot API server.
func serveSnapshot(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLoggerWithLevel(utils.ParseLogLevel(cfg.LogLevel))
	metrics := monitoring.NewMetrics()

	server := api.NewServer(cfg.Server, logger, metrics)
	return server.ListenAndServe()
}

// hasFlag checks if a flag is present in command line arguments
func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

// main handles CLI arguments and routes to the appropriate functions
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		requireArg(2, "config file", "stagescrapexter run <config.yaml>")
		exitOnError(runAggregator(os.Args[2]))

	case "validate":
		requireArg(2, "config file", "stagescrapexter validate <config.yaml>")
		exitOnError(validateConfigFile(os.Args[2]))

	case "template":
		template, err := generateTemplate()
		exitOnError(err)
		fmt.Print(template)

	case "reshape":
		requireArg(3, "snapshot and output files", "stagescrapexter reshape <snapshot.json> <out.json>")
		exitOnError(reshapeSnapshot(os.Args[2], os.Args[3]))

	case "serve":
		requireArg(2, "config file", "stagescrapexter serve <config.yaml>")
		exitOnError(serveSnapshot(os.Args[2]))

	case "version", "--version":
		printVersion()

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		os.Exit(1)
	}
}

// requireArg exits with usage information when a positional argument is
// missing.
func requireArg(index int, name, usage string) {
	if len(os.Args) <= index {
		fmt.Fprintf(os.Stderr, "Error: %s required\n", name)
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
}

// exitOnError prints the error and exits non-zero.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printUsage displays help information
func printUsage() {
	fmt.Println("StageScrapexter - Theater Season Catalog Aggregator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stagescrapexter run <config.yaml>              Aggregate all sources into a snapshot")
	fmt.Println("  stagescrapexter validate <config.yaml>         Validate configuration file")
	fmt.Println("  stagescrapexter template                       Generate configuration template")
	fmt.Println("  stagescrapexter reshape <snapshot> <out.json>  Reshape a snapshot for the website backend")
	fmt.Println("  stagescrapexter serve <config.yaml>            Serve the latest snapshot over HTTP")
	fmt.Println("  stagescrapexter version                        Show version information")
	fmt.Println("  stagescrapexter help                           Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose                                  Enable verbose output")
}

// printVersion displays version information
func printVersion() {
	fmt.Printf("StageScrapexter %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
