// ABOUTME: RAGAS-style metrics for faithfulness, context recall, and source recall
// ABOUTME: Simplified deterministic evaluation based on ground truth comparison

package ragas

import (
	"fmt"
	"strings"
)

// passThreshold is the minimum score every metric needs for a PASS
const passThreshold = 0.9

// MetricsCalculator computes scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0)
// Faithfulness = Does the answer contain the expected facts and no forbidden ones?
func (m *MetricsCalculator) CalculateFaithfulness(
	answer string,
	expectedInAnswer []string,
	forbiddenInAnswer []string,
) (float64, string) {
	answerUpper := strings.ToUpper(answer)

	missingItems := []string{}
	for _, expected := range expectedInAnswer {
		if !strings.Contains(answerUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInAnswer {
		if strings.Contains(answerUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	switch {
	case len(missingItems) == 0 && len(forbiddenFound) == 0:
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	case len(missingItems) > 0 && len(forbiddenFound) > 0:
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	case len(missingItems) > 0:
		return 0.5, fmt.Sprintf("Partial faithfulness - missing expected items: %v", missingItems)
	default:
		return 0.5, fmt.Sprintf("Partial faithfulness - forbidden items found: %v", forbiddenFound)
	}
}

// CalculateContextRecall computes context recall score (0.0-1.0)
// Context Recall = Were the chunks holding the expected text retrieved?
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	allContext := strings.ToUpper(strings.Join(retrievedContext, " "))
	return proportionFound(expectedContextItems, func(item string) bool {
		return strings.Contains(allContext, strings.ToUpper(item))
	}, "context recall")
}

// CalculateSourceRecall computes source recall score (0.0-1.0)
// Source Recall = Does the answer cite the documents it should?
func (m *MetricsCalculator) CalculateSourceRecall(
	sources []string,
	expectedSources []string,
) (float64, string) {
	if len(expectedSources) == 0 {
		return 1.0, "No sources required"
	}

	cited := make(map[string]bool, len(sources))
	for _, s := range sources {
		cited[s] = true
	}
	return proportionFound(expectedSources, func(item string) bool {
		return cited[item]
	}, "source recall")
}

func proportionFound(expected []string, found func(string) bool, metric string) (float64, string) {
	foundCount := 0
	missingItems := []string{}
	for _, item := range expected {
		if found(item) {
			foundCount++
		} else {
			missingItems = append(missingItems, item)
		}
	}

	recall := float64(foundCount) / float64(len(expected))
	if recall == 1.0 {
		return 1.0, fmt.Sprintf("Perfect %s - all expected items found", metric)
	}
	return recall, fmt.Sprintf("Partial %s (%.2f) - missing items: %v", metric, recall, missingItems)
}

// EvaluateTest runs the full evaluation for a test
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	answer string,
	sources []string,
	retrievedContext []string,
) TestResult {
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		answer,
		scenario.GroundTruth.ExpectedInAnswer,
		scenario.GroundTruth.ForbiddenInAnswer,
	)

	recall, recallDetail := m.CalculateContextRecall(
		retrievedContext,
		scenario.GroundTruth.ExpectedContext,
	)

	sourceRecall, sourceDetail := m.CalculateSourceRecall(
		sources,
		scenario.GroundTruth.ExpectedSources,
	)

	overallScore := (faithfulness + recall + sourceRecall) / 3.0

	status := "FAIL"
	if faithfulness >= passThreshold && recall >= passThreshold && sourceRecall >= passThreshold {
		status = "PASS"
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		SourceRecallScore:  sourceRecall,
		OverallScore:       overallScore,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail":  faithfulnessDetail,
			"recall_detail":        recallDetail,
			"source_recall_detail": sourceDetail,
			"answer":               answer[:min(200, len(answer))],
			"sources":              sources,
			"context_items":        len(retrievedContext),
		},
	}
}
