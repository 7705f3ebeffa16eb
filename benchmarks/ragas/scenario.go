// ABOUTME: Benchmark scenario data structures and YAML loading
// ABOUTME: Each scenario names documents, one question, and the ground truth to score against

package ragas

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harper/document-assistant/internal/loader"
)

// TestScenario represents a complete benchmark test
type TestScenario struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Documents   []ScenarioDoc `yaml:"documents"`
	Question    string        `yaml:"question"`
	GroundTruth GroundTruth   `yaml:"ground_truth"`
}

// ScenarioDoc is either a PDF on disk or an inline document.
// Inline documents let scenarios run without PDF fixtures.
type ScenarioDoc struct {
	// Path of a PDF, relative to the scenario file
	Path string `yaml:"path,omitempty"`
	// Source names an inline document; Pages holds its text
	Source string   `yaml:"source,omitempty"`
	Pages  []string `yaml:"pages,omitempty"`
}

// GroundTruth defines expected outcomes for evaluation
type GroundTruth struct {
	ExpectedInAnswer  []string `yaml:"expected_in_answer"`  // MUST appear in the answer
	ForbiddenInAnswer []string `yaml:"forbidden_in_answer"` // MUST NOT appear in the answer
	ExpectedContext   []string `yaml:"expected_context"`    // should appear in retrieved chunks
	ExpectedSources   []string `yaml:"expected_sources"`    // should appear in the answer's sources
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID             string                 `json:"test_id"`
	TestName           string                 `json:"test_name"`
	FaithfulnessScore  float64                `json:"faithfulness_score"`
	ContextRecallScore float64                `json:"context_recall_score"`
	SourceRecallScore  float64                `json:"source_recall_score"`
	OverallScore       float64                `json:"overall_score"`
	Status             string                 `json:"status"` // "PASS" or "FAIL"
	Details            map[string]interface{} `json:"details"`
	ErrorMessage       string                 `json:"error_message,omitempty"`
}

type scenarioFile struct {
	Scenarios []TestScenario `yaml:"scenarios"`
}

// LoadScenarios reads scenarios from a YAML file and resolves document
// paths relative to it
func LoadScenarios(path string) ([]TestScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenarios %s: %w", path, err)
	}

	base := filepath.Dir(path)
	seen := make(map[string]bool)
	for i := range file.Scenarios {
		s := &file.Scenarios[i]
		if err := s.validate(); err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true

		for j := range s.Documents {
			d := &s.Documents[j]
			if d.Path != "" && !filepath.IsAbs(d.Path) {
				d.Path = filepath.Join(base, d.Path)
			}
		}
	}
	return file.Scenarios, nil
}

// FindScenario returns the scenario with the given id
func FindScenario(scenarios []TestScenario, id string) (TestScenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return TestScenario{}, false
}

func (s TestScenario) validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario %q has no id", s.Name)
	}
	if s.Question == "" {
		return fmt.Errorf("scenario %s has no question", s.ID)
	}
	if len(s.Documents) == 0 {
		return fmt.Errorf("scenario %s has no documents", s.ID)
	}
	for _, d := range s.Documents {
		if (d.Path == "") == (d.Source == "") {
			return fmt.Errorf("scenario %s: each document needs exactly one of path or source", s.ID)
		}
		if d.Source != "" && !loader.Supported(d.Source) {
			return fmt.Errorf("scenario %s: inline source %q must be named like a PDF", s.ID, d.Source)
		}
	}
	return nil
}
