package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecord_Format(t *testing.T) {
	var sb strings.Builder
	err := WriteRecord(&sb, Record{
		Evaluations: 12,
		F:           101.5,
		BestF:       100.25,
		Optimum:     100,
		X:           []float64{1, -2.5},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"12 +1.500000000e+00 +2.500000000e-01 +1.015000000e+02 +1.002500000e+02 +1.0000e+00 -2.5000e+00\n",
		sb.String())
}

func TestWriteRecord_CoordinatesOmittedAbove21Dimensions(t *testing.T) {
	tests := []struct {
		dim        int
		wantFields int
	}{
		{1, 6},
		{21, 26},
		{22, 5},
		{40, 5},
	}
	for _, tt := range tests {
		var sb strings.Builder
		require.NoError(t, WriteRecord(&sb, Record{Evaluations: 1, F: 1, BestF: 1, X: make([]float64, tt.dim)}))
		assert.Len(t, strings.Fields(sb.String()), tt.wantFields, "dim %d", tt.dim)
	}
}

func TestWriteRecord_NegativeGap(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteRecord(&sb, Record{Evaluations: 3, F: -1, BestF: -1, Optimum: 0}))
	assert.Equal(t, "3 -1.000000000e+00 -1.000000000e+00 -1.000000000e+00 -1.000000000e+00\n", sb.String())
}

func TestWriteHeader(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteHeader(&sb, 79.48))

	header := sb.String()
	assert.True(t, strings.HasPrefix(header, "% function evaluation | noise-free fitness - Fopt (7.948000000000e+01) | "))
	assert.True(t, strings.HasSuffix(header, "| x1 | x2...\n"))
	assert.Equal(t, 1, strings.Count(header, "\n"))
}
