// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Runs question-answering scenarios against the configured models and writes JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harper/document-assistant/benchmarks/ragas"
	"github.com/harper/document-assistant/internal/config"
	"github.com/harper/document-assistant/internal/logging"
)

func main() {
	scenariosPath := flag.String("scenarios", "benchmarks/ragas/testdata/scenarios.yaml", "Path to the scenarios YAML file")
	testID := flag.String("test", "", "Run a single scenario by id. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	logger := logging.New(os.Stderr, "info")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	scenarios, err := ragas.LoadScenarios(*scenariosPath)
	if err != nil {
		logger.Fatal("failed to load scenarios", "err", err)
	}

	fmt.Println("========================================")
	fmt.Println("Document Assistant RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Printf("Embedding: %s/%s\n", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	fmt.Printf("Generation: %s/%s\n", cfg.LLMProvider, cfg.ChatModel)
	fmt.Println()

	runner, err := ragas.NewBenchmarkRunner(cfg, *verbose)
	if err != nil {
		logger.Fatal("failed to create benchmark runner", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []ragas.TestResult
	if *testID == "" {
		fmt.Printf("Running %d scenarios...\n\n", len(scenarios))
		results = runner.RunAllTests(ctx, scenarios)
	} else {
		scenario, ok := ragas.FindScenario(scenarios, *testID)
		if !ok {
			logger.Fatal("unknown scenario", "id", *testID, "valid", scenarioIDs(scenarios))
		}

		fmt.Printf("Running test: %s\n\n", scenario.Name)
		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			logger.Fatal("test failed", "id", scenario.ID, "err", err)
		}
		results = []ragas.TestResult{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		if result.ErrorMessage != "" {
			fmt.Printf("  Error: %s\n", result.ErrorMessage)
		}
		fmt.Printf("  Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("  Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Source Recall: %.2f\n", result.SourceRecallScore)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)
	}

	summary := ragas.Summarize(results)
	fmt.Println("\n========================================")
	fmt.Printf("Total Tests: %d\n", summary.TotalTests)
	fmt.Printf("Passed: %d\n", summary.Passed)
	fmt.Printf("Failed: %d\n", summary.Failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		logger.Fatal("failed to export results", "err", err)
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func scenarioIDs(scenarios []ragas.TestScenario) string {
	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
