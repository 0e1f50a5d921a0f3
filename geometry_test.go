package yololbl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBboxFromPoints(t *testing.T) {
	t.Parallel()

	points := [][]float64{{10, 10}, {110, 10}, {110, 60}, {10, 60}}
	values, err := bboxFromPoints(points, 200, 100)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.3, 0.35, 0.5, 0.5}, values, 1e-12)

	line := LabelLine{ClassID: 0, Values: values}
	assert.Equal(t, "0 0.300000 0.350000 0.500000 0.500000", line.String())
}

func TestBboxFromPoints_CenterIsMeanOfPoints(t *testing.T) {
	t.Parallel()

	// The mean of the points (40, 10) differs from the box middle (50, 10).
	points := [][]float64{{0, 0}, {20, 0}, {100, 30}}
	values, err := bboxFromPoints(points, 100, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, values[0], 1e-12)
	assert.InDelta(t, 0.1, values[1], 1e-12)
	assert.InDelta(t, 1.0, values[2], 1e-12)
	assert.InDelta(t, 0.3, values[3], 1e-12)
}

func TestBboxFromPoints_Errors(t *testing.T) {
	t.Parallel()

	_, err := bboxFromPoints(nil, 10, 10)
	assert.Error(t, err)

	_, err = bboxFromPoints([][]float64{{1, 2}, {3}}, 10, 10)
	assert.ErrorContains(t, err, "point 1")
}

func TestPolygonFromPoints(t *testing.T) {
	t.Parallel()

	points := [][]float64{{0, 0}, {50, 25}, {100, 50}}
	values, err := polygonFromPoints(points, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0.5, 0.5, 1, 1}, values)

	line := LabelLine{ClassID: 2, Values: values}
	assert.Equal(t, "2 0.000000 0.000000 0.500000 0.500000 1.000000 1.000000", line.String())
}

func TestFirstOutOfUnitRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, firstOutOfUnitRange([]float64{0, 0.5, 1}))
	assert.Equal(t, 1, firstOutOfUnitRange([]float64{0, 1.01, -1}))
	assert.Equal(t, 0, firstOutOfUnitRange([]float64{-0.0001}))
}
