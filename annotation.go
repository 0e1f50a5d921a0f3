package yololbl

// LabelMe annotation input.

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ShapeRecord is one annotated region of an image.
type ShapeRecord struct {
	Label     string      `json:"label"`
	Points    [][]float64 `json:"points"` // Absolute [x, y] pixel coordinates.
	ShapeType string      `json:"shape_type,omitempty"`

	// DecodeErr is set if the shape in the annotation file has the wrong JSON types. The other
	// shapes of the file are still decoded.
	DecodeErr error `json:"-"`
}

// UnmarshalJSON decodes a shape. Type errors are stored in DecodeErr instead of being returned, so
// a malformed shape does not fail the whole annotation file.
func (s *ShapeRecord) UnmarshalJSON(data []byte) error {
	*s = ShapeRecord{}

	var raw struct {
		Label     json.RawMessage `json:"label"`
		Points    json.RawMessage `json:"points"`
		ShapeType json.RawMessage `json:"shape_type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.DecodeErr = fmt.Errorf("invalid shape: %w", err)
		return nil
	}

	if len(raw.Label) > 0 {
		if err := json.Unmarshal(raw.Label, &s.Label); err != nil {
			s.DecodeErr = fmt.Errorf("invalid label %s", raw.Label)
			return nil
		}
	}
	if len(raw.Points) > 0 {
		if err := json.Unmarshal(raw.Points, &s.Points); err != nil {
			s.Points = nil
			s.DecodeErr = fmt.Errorf("invalid points %s", raw.Points)
			return nil
		}
	}
	// The shape type is informational only.
	_ = json.Unmarshal(raw.ShapeType, &s.ShapeType)
	return nil
}

// AnnotationRecord is the content of a single annotation file.
type AnnotationRecord struct {
	ImageWidth  int           `json:"imageWidth"`
	ImageHeight int           `json:"imageHeight"`
	ImagePath   string        `json:"imagePath"` // Relative to the annotation file.
	Shapes      []ShapeRecord `json:"shapes"`
}

// UnmarshalJSON decodes an annotation file. The image size may be written as a float as long as it
// is integral.
func (r *AnnotationRecord) UnmarshalJSON(data []byte) error {
	type record AnnotationRecord
	var raw struct {
		record
		ImageWidth  float64 `json:"imageWidth"`
		ImageHeight float64 `json:"imageHeight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	w, err := imageDimension("imageWidth", raw.ImageWidth)
	if err != nil {
		return err
	}
	h, err := imageDimension("imageHeight", raw.ImageHeight)
	if err != nil {
		return err
	}

	*r = AnnotationRecord(raw.record)
	r.ImageWidth, r.ImageHeight = w, h
	return nil
}

func imageDimension(name string, v float64) (int, error) {
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer, got %g", name, v)
	}
	return int(v), nil
}

// HasValidSize reports whether both image dimensions are positive.
func (r AnnotationRecord) HasValidSize() bool {
	return r.ImageWidth > 0 && r.ImageHeight > 0
}

// ImageFile resolves ImagePath against the directory of the annotation file at annotationPath.
// It returns an empty string if the record does not reference an image.
func (r AnnotationRecord) ImageFile(annotationPath string) string {
	if r.ImagePath == "" {
		return ""
	}
	// Annotations created on Windows use backslash separators.
	p := filepath.FromSlash(strings.ReplaceAll(r.ImagePath, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(annotationPath), p)
}

// ReadAnnotation reads and parses the annotation file at path.
func ReadAnnotation(path string) (AnnotationRecord, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return AnnotationRecord{}, err
	}

	var r AnnotationRecord
	if err := json.Unmarshal(enc, &r); err != nil {
		return AnnotationRecord{}, fmt.Errorf("failed to parse annotation %q: %w", path, err)
	}

	return r, nil
}
