// ABOUTME: Tests for vector encoding and cosine similarity
// ABOUTME: Verifies BLOB round trips and similarity edge cases
package sqlite

import (
	"math"
	"testing"
)

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0, 1.5, -2.25, math.MaxFloat64, math.SmallestNonzeroFloat64}

	blob := vectorToBlob(vector)
	if len(blob) != len(vector)*8 {
		t.Fatalf("blob length = %d, want %d", len(blob), len(vector)*8)
	}

	got := blobToVector(blob)
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, got[i], vector[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"scaled", []float64{1, 1}, []float64{3, 3}, 1},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
