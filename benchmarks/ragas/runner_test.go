// ABOUTME: Tests for the benchmark runner and scenario loading
// ABOUTME: Uses keyword embeddings and a scripted generator instead of real models

package ragas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type keywordEmbedder struct{}

var benchKeywords = []string{"refund", "shipping", "laptop", "battery", "flight"}

func (keywordEmbedder) vector(text string) []float64 {
	lower := strings.ToLower(text)
	v := make([]float64, len(benchKeywords)+1)
	for i, k := range benchKeywords {
		v[i] = float64(strings.Count(lower, k))
	}
	v[len(benchKeywords)] = 0.01
	return v
}

func (e keywordEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return e.vector(text), nil
}

func (e keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (keywordEmbedder) ModelInfo() string { return "test:keywords" }

type scriptedGenerator struct {
	reply string
	err   error
}

func (g scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

func (scriptedGenerator) ModelInfo() string { return "test:scripted" }

func loadTestScenarios(t *testing.T) []TestScenario {
	t.Helper()
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios.yaml"))
	if err != nil {
		t.Fatalf("LoadScenarios failed: %v", err)
	}
	return scenarios
}

func TestLoadScenarios(t *testing.T) {
	scenarios := loadTestScenarios(t)

	if len(scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(scenarios))
	}
	refund, ok := FindScenario(scenarios, "refund")
	if !ok {
		t.Fatal("refund scenario not found")
	}
	if len(refund.Documents) != 2 || refund.Documents[0].Source != "policy.pdf" {
		t.Errorf("documents = %+v", refund.Documents)
	}
	if refund.GroundTruth.ExpectedSources[0] != "policy.pdf" {
		t.Errorf("expected sources = %v", refund.GroundTruth.ExpectedSources)
	}
	if _, ok := FindScenario(scenarios, "missing"); ok {
		t.Error("FindScenario should report unknown ids")
	}
}

func TestLoadScenarios_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no id", "scenarios:\n  - question: q\n    documents: [{source: a.pdf}]\n"},
		{"no question", "scenarios:\n  - id: x\n    documents: [{source: a.pdf}]\n"},
		{"no documents", "scenarios:\n  - id: x\n    question: q\n"},
		{"path and source", "scenarios:\n  - id: x\n    question: q\n    documents: [{source: a.pdf, path: b.pdf}]\n"},
		{"inline not pdf", "scenarios:\n  - id: x\n    question: q\n    documents: [{source: a.txt}]\n"},
		{"duplicate id", "scenarios:\n  - id: x\n    question: q\n    documents: [{source: a.pdf}]\n  - id: x\n    question: q\n    documents: [{source: a.pdf}]\n"},
		{"bad yaml", "scenarios: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenarios.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadScenarios(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScenarios_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	content := "scenarios:\n  - id: x\n    question: q\n    documents: [{path: docs/a.pdf}]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	scenarios, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios failed: %v", err)
	}
	if got, want := scenarios[0].Documents[0].Path, filepath.Join(dir, "docs", "a.pdf"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestRunTest_Pass(t *testing.T) {
	scenario, _ := FindScenario(loadTestScenarios(t), "refund")
	var out bytes.Buffer
	r := newRunner(keywordEmbedder{}, scriptedGenerator{reply: "Customers have 30 days."}, &out, true)

	result, err := r.RunTest(context.Background(), scenario)
	if err != nil {
		t.Fatalf("RunTest failed: %v", err)
	}
	if result.Status != "PASS" {
		t.Errorf("result = %+v, want PASS", result)
	}
	if result.Details["sources"].([]string)[0] != "policy.pdf" {
		t.Errorf("sources = %v, want policy.pdf first", result.Details["sources"])
	}
	if !strings.Contains(out.String(), "RESULTS: Refund window") {
		t.Error("verbose output should include results header")
	}
}

func TestRunTest_Fail(t *testing.T) {
	scenario, _ := FindScenario(loadTestScenarios(t), "refund")
	r := newRunner(keywordEmbedder{}, scriptedGenerator{reply: "Customers have 60 days."}, &bytes.Buffer{}, false)

	result, err := r.RunTest(context.Background(), scenario)
	if err != nil {
		t.Fatalf("RunTest failed: %v", err)
	}
	if result.Status != "FAIL" || result.FaithfulnessScore != 0.0 {
		t.Errorf("result = %+v, want FAIL with faithfulness 0", result)
	}
}

func TestRunAllTests_RecordsErrors(t *testing.T) {
	scenarios := loadTestScenarios(t)
	r := newRunner(keywordEmbedder{}, scriptedGenerator{err: errors.New("model offline")}, &bytes.Buffer{}, false)

	results := r.RunAllTests(context.Background(), scenarios)
	if len(results) != len(scenarios) {
		t.Fatalf("got %d results, want %d", len(results), len(scenarios))
	}
	for _, res := range results {
		if res.Status != "FAIL" || !strings.Contains(res.ErrorMessage, "model offline") {
			t.Errorf("result = %+v, want FAIL with the model error", res)
		}
	}
}

func TestExportResults(t *testing.T) {
	var out bytes.Buffer
	r := newRunner(keywordEmbedder{}, scriptedGenerator{}, &out, false)
	path := filepath.Join(t.TempDir(), "results.json")

	results := []TestResult{
		{TestID: "a", Status: "PASS"},
		{TestID: "b", Status: "FAIL"},
		{TestID: "c", Status: "PASS"},
	}
	if err := r.ExportResults(results, path); err != nil {
		t.Fatalf("ExportResults failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalTests != 3 || summary.Passed != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
}
