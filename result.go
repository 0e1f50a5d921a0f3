package yololbl

import "fmt"

// Reason is why a shape was rejected.
type Reason int

// The shape rejection reasons. Accepted is the zero value.
const (
	Accepted          Reason = iota
	MissingData              // No label or no points.
	TooFewPoints             // Polygon with less than three points.
	MalformedPoint           // A point without both coordinates, or a shape with wrong JSON types.
	OutOfRange               // A normalised value outside [0, 1].
	UnknownClassLabel        // Label without a class mapping.
	PostCheckMismatch        // The rendered line does not classify as the requested kind.
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case MissingData:
		return "missing label or points"
	case TooFewPoints:
		return "too few points"
	case MalformedPoint:
		return "malformed point"
	case OutOfRange:
		return "out of range"
	case UnknownClassLabel:
		return "unknown label"
	case PostCheckMismatch:
		return "wrong label format"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// ShapeResult is the outcome of converting a single shape.
type ShapeResult struct {
	Line   LabelLine // Valid only if Reason == Accepted.
	Reason Reason
	Detail string // Diagnostic message for rejected shapes.
}

// OK reports whether the shape was accepted.
func (r ShapeResult) OK() bool {
	return r.Reason == Accepted
}

func reject(reason Reason, format string, v ...interface{}) ShapeResult {
	return ShapeResult{Reason: reason, Detail: fmt.Sprintf(format, v...)}
}

// Outcome is the result of converting an annotation file.
type Outcome int

// The file outcomes. Only Converted counts as a successful file.
const (
	Converted         Outcome = iota
	ReadFailed                // The annotation could not be read or parsed.
	InvalidDimensions         // Non-positive image width or height.
	NoValidLabels             // All shapes were rejected (or there were none).
	ImageMissing              // The referenced image does not exist or cannot be read.
	WriteFailed               // The outputs could not be written.
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case ReadFailed:
		return "read failed"
	case InvalidDimensions:
		return "invalid image dimensions"
	case NoValidLabels:
		return "no valid labels"
	case ImageMissing:
		return "image missing"
	case WriteFailed:
		return "write failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// FileResult is the outcome of converting one annotation file.
type FileResult struct {
	Pair      FilePair
	Outcome   Outcome
	Shapes    []ShapeResult // One per processed shape, in annotation order.
	LabelPath string        // The written label file, if Outcome == Converted.
	ImagePath string        // The copied image, if Outcome == Converted.
	Err       error         // The cause for ReadFailed, ImageMissing and WriteFailed.
}

// OK reports whether the file was converted.
func (r FileResult) OK() bool {
	return r.Outcome == Converted
}

// Lines returns the accepted label lines, in shape order.
func (r FileResult) Lines() []LabelLine {
	lines := make([]LabelLine, 0, len(r.Shapes))
	for _, s := range r.Shapes {
		if s.OK() {
			lines = append(lines, s.Line)
		}
	}
	return lines
}

// Rejected returns the number of rejected shapes.
func (r FileResult) Rejected() int {
	n := 0
	for _, s := range r.Shapes {
		if !s.OK() {
			n++
		}
	}
	return n
}
