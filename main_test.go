package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDetection(t *testing.T) {
	labels := map[int]string{0: "person", 1: "bicycle"}
	line, err := formatDetection(labels, Detection{
		Box:     [4]float32{0.1, 0.1, 0.9, 0.9},
		ClassID: 0,
		Score:   0.75,
	})
	require.NoError(t, err)
	require.Equal(t, "id: 0, type: person, score: 0.75", line)
}

func TestFormatDetectionRoundsScore(t *testing.T) {
	labels := map[int]string{1: "bicycle"}
	line, err := formatDetection(labels, Detection{ClassID: 1, Score: 0.666})
	require.NoError(t, err)
	require.Equal(t, "id: 1, type: bicycle, score: 0.67", line)
}

func TestFormatDetectionUnknownClass(t *testing.T) {
	labels := map[int]string{0: "person"}
	_, err := formatDetection(labels, Detection{ClassID: 42, Score: 0.9})
	require.Error(t, err)
}
