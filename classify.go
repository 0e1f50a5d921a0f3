package yololbl

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LabelKind is the classification of a YOLO label line.
type LabelKind int

// The label kinds.
const (
	InvalidLabel LabelKind = iota
	BBoxLabel              // class x_center y_center width height
	PolygonLabel           // class x1 y1 x2 y2 x3 y3 ...
)

func (k LabelKind) String() string {
	switch k {
	case BBoxLabel:
		return "Detection (BBox)"
	case PolygonLabel:
		return "Segmentation (Polygon)"
	}
	return "Invalid"
}

// ErrEmptyLabel is returned by Classify for blank lines.
var ErrEmptyLabel = errors.New("empty label")

// Classify parses a label line and reports whether it is a bounding box or a polygon. For invalid
// lines the error describes the problem.
func Classify(line string) (LabelKind, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return InvalidLabel, ErrEmptyLabel
	}
	if len(tokens) < 2 {
		return InvalidLabel,
			fmt.Errorf("insufficient data: at least one class id and one coordinate is required")
	}

	if _, err := parseClassID(tokens[0]); err != nil {
		return InvalidLabel, err
	}

	values := make([]float64, len(tokens)-1)
	for i, tok := range tokens[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return InvalidLabel, fmt.Errorf("process error: invalid value %q", tok)
		}
		values[i] = v
	}

	return ClassifyValues(values)
}

// parseClassID parses a class id token. Float tokens such as "2.0" are truncated to an integer.
func parseClassID(tok string) (int, error) {
	if id, err := strconv.Atoi(tok); err == nil {
		return id, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("process error: invalid class id %q", tok)
	}
	return int(v), nil
}

// ClassifyValues classifies the coordinate values of a label line, i.e. the line without its
// class id.
//
// Four values form a bounding box. All must be non-negative; values above 1 are tolerated as
// normalisation overflow. An even number of at least six values forms a polygon, which is invalid
// if any point has a negative component.
func ClassifyValues(values []float64) (LabelKind, error) {
	n := len(values)
	switch {
	case n == 4:
		for _, v := range values {
			if !(v >= 0) {
				return InvalidLabel, fmt.Errorf("bbox coordinates are out of range")
			}
		}
		return BBoxLabel, nil

	case n >= 6 && n%2 == 0:
		var invalid []string
		for i := 0; i < n; i += 2 {
			x, y := values[i], values[i+1]
			if !(x >= 0 && y >= 0) {
				invalid = append(invalid, fmt.Sprintf("(%g,%g)", x, y))
			}
		}
		if len(invalid) > 0 {
			return InvalidLabel,
				fmt.Errorf("invalid polygon coordinates: %s", strings.Join(invalid, ", "))
		}
		return PolygonLabel, nil
	}

	return InvalidLabel, fmt.Errorf("unsupported coordinate number: %d", n)
}
