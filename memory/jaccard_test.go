package memory_test

import (
	"testing"

	"github.com/musebox/musesummoner/memory"
	"github.com/stretchr/testify/require"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "alpha beta gamma", "alpha beta gamma", 1.0},
		{"case and repeats fold", "Alpha ALPHA beta", "alpha beta", 1.0},
		{"half overlap", "alpha beta", "alpha gamma", 1.0 / 3.0},
		{"disjoint", "alpha beta", "gamma delta", 0},
		{"both empty", "", "", 0},
		{"one empty", "alpha", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, memory.Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := "the fabric of conversation unfolds"
	b := "our conversation about fabric"
	require.Equal(t, memory.Jaccard(a, b), memory.Jaccard(b, a))
}
