// haustool is a CLI utility for validating HausBuild project snapshots.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hausbuild/hausbuild/internal/config"
	"github.com/hausbuild/hausbuild/internal/logger"
	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/internal/report"
	"github.com/hausbuild/hausbuild/internal/validation"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		cmdCheck(args, validation.ValidationComprehensive)
	case "quick":
		cmdCheck(args, validation.ValidationQuick)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`haustool - HausBuild project validation utility

Usage:
  haustool <command> [options]

Commands:
  check [options] <project.yaml>   Run the full validation pipeline
  quick [options] <project.yaml>   Run without per-triangle and overlap scans

Options (before the snapshot path):
  -config <file>       Explicit config file
  -debug               Debug logging
  -perf-mode           Skip aggregate complexity checks
  -tolerance <value>   Zero-extent tolerance override
  -max-polygons <n>    Per-buffer triangle budget override

Exit status:
  0  validation passed (canProceed)
  1  critical issues block the project
  2  could not load config or snapshot

Examples:
  haustool check townhouse.yaml
  haustool quick townhouse.yaml`)
}

func cmdCheck(args []string, typ validation.ValidationType) {
	if err := config.ParseArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	rest := config.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: haustool check [options] <project.yaml>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	project, err := loadProject(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	reporter := report.NewMemoryReporter()
	service := validation.NewValidationService(cfg.Validation.Settings(), reporter, logger.Log)
	result := service.ValidateProject(project.Elements, project.Materials, project.Assets, typ)

	printResult(project, &result)
	logger.Sync()

	if !result.CanProceed {
		os.Exit(1)
	}
}

func loadProject(path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", path, err)
	}
	var project model.Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", path, err)
	}
	return &project, nil
}

func printResult(project *model.Project, result *validation.ComprehensiveValidationResult) {
	name := project.Name
	if name == "" {
		name = "(unnamed project)"
	}
	fmt.Printf("Project: %s\n", name)
	fmt.Printf("Elements: %d  Materials: %d  Assets: %d\n\n",
		len(project.Elements), len(project.Materials), len(project.Assets))

	for _, e := range result.Geometry.Errors {
		fmt.Printf("  [%s] %-22s %s\n", e.Severity, e.Type, e.Message)
	}
	for _, e := range result.Export.Errors {
		fmt.Printf("  [%s] %-22s %s\n", e.Severity, e.Type, e.Message)
	}
	for _, w := range result.Geometry.Warnings {
		fmt.Printf("  [warning] %-21s %s\n", w.Type, w.Message)
	}
	for _, w := range result.Export.Warnings {
		fmt.Printf("  [warning] %-21s %s\n", w.Type, w.Message)
	}
	for _, m := range result.Export.MissingAssets {
		fmt.Printf("  missing %s %q used by %v\n", m.Kind, m.ID, m.UsedBy)
	}
	if len(result.Geometry.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range result.Geometry.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}

	s := result.Summary
	fmt.Printf("\nIssues: %d total (%d critical, %d major, %d minor, %d warnings)\n",
		s.TotalIssues, s.CriticalErrors, s.MajorErrors, s.MinorErrors, s.Warnings)
	fmt.Printf("Material rating: %s\n", result.Export.PerformanceMetrics.PerformanceRating)

	switch {
	case result.IsValid:
		fmt.Println("Result: VALID")
	case result.CanProceed:
		fmt.Println("Result: INVALID (major issues; save/export may proceed)")
	default:
		fmt.Println("Result: BLOCKED (critical issues)")
	}
}
