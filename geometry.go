package yololbl

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LabelLine is one normalised YOLO label: a class id followed by either x_center, y_center, width,
// height (bounding box) or the flattened x, y pairs of a polygon. All coordinates are fractions of
// the image size.
type LabelLine struct {
	ClassID int
	Values  []float64
}

// String renders the line with six decimals per value.
func (l LabelLine) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(l.ClassID))
	for _, v := range l.Values {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(v, 'f', 6, 64))
	}
	return b.String()
}

// coords splits points into x and y slices. Points with fewer than two values are an error.
func coords(points [][]float64) (xs, ys []float64, err error) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		if len(p) < 2 {
			return nil, nil, fmt.Errorf("point %d has %d values, expected 2", i, len(p))
		}
		xs[i], ys[i] = p[0], p[1]
	}
	return xs, ys, nil
}

// bboxFromPoints returns the normalised x_center, y_center, width and height of the points.
//
// The center is the mean of all points rather than the middle of the box, matching labels produced
// by earlier versions of the converter.
func bboxFromPoints(points [][]float64, imageWidth, imageHeight int) ([]float64, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points")
	}
	xs, ys, err := coords(points)
	if err != nil {
		return nil, err
	}

	w, h := float64(imageWidth), float64(imageHeight)
	n := float64(len(points))
	return []float64{
		floats.Sum(xs) / n / w,
		floats.Sum(ys) / n / h,
		(floats.Max(xs) - floats.Min(xs)) / w,
		(floats.Max(ys) - floats.Min(ys)) / h,
	}, nil
}

// polygonFromPoints returns the flattened, normalised x, y pairs of the points.
func polygonFromPoints(points [][]float64, imageWidth, imageHeight int) ([]float64, error) {
	xs, ys, err := coords(points)
	if err != nil {
		return nil, err
	}

	w, h := float64(imageWidth), float64(imageHeight)
	values := make([]float64, 0, 2*len(points))
	for i := range xs {
		values = append(values, xs[i]/w, ys[i]/h)
	}
	return values, nil
}

// firstOutOfUnitRange returns the index of the first value outside [0, 1], or -1.
func firstOutOfUnitRange(values []float64) int {
	for i, v := range values {
		if !(v >= 0 && v <= 1) {
			return i
		}
	}
	return -1
}
