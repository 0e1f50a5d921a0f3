package yololbl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Task selects the kind of labels to produce.
type Task int

// The conversion tasks.
const (
	Detection    Task = iota // Axis-aligned bounding boxes.
	Segmentation             // Polygons.
)

func (t Task) String() string {
	if t == Segmentation {
		return "segmentation"
	}
	return "detection"
}

// labelKind is the classification the rendered lines of the task must have.
func (t Task) labelKind() LabelKind {
	if t == Segmentation {
		return PolygonLabel
	}
	return BBoxLabel
}

// ParseTask parses "detection" or "segmentation".
func ParseTask(s string) (Task, error) {
	switch s {
	case "detection":
		return Detection, nil
	case "segmentation":
		return Segmentation, nil
	}
	return Detection, fmt.Errorf("unsupported task %q, must be detection or segmentation", s)
}

// SetupError is returned when the converter cannot prepare its output directory.
type SetupError struct {
	Op   string
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Config configures a Converter.
type Config struct {
	Target  string       // Root output directory; labels go to Target/<task>.
	Task    Task         // The kind of labels to produce.
	Classes ClassMapping // Defaults to DefaultClassMapping.
}

// Converter converts annotation files into YOLO label files for one task.
type Converter struct {
	task    Task
	classes ClassMapping
	outDir  string
	errLog  *ErrorLog
}

// NewConverter creates the output directory Target/<task>, writes the class list into it and opens
// the error log Target/label_errors.txt.
func NewConverter(cfg Config, logOpts ...ErrorLogOption) (*Converter, error) {
	if cfg.Target == "" {
		return nil, &SetupError{Op: "validate target", Path: cfg.Target,
			Err: errors.New("empty path")}
	}
	classes := cfg.Classes
	if classes.Len() == 0 {
		classes = DefaultClassMapping()
	}

	outDir := filepath.Join(cfg.Target, cfg.Task.String())
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, &SetupError{Op: "create directory", Path: outDir, Err: err}
	}

	classesPath, err := classes.WriteClassesFile(outDir)
	if err != nil {
		return nil, &SetupError{Op: "write classes", Path: outDir, Err: err}
	}
	Logf("Created: %s", classesPath)

	logPath := filepath.Join(cfg.Target, ErrorLogFileName)
	errLog, err := OpenErrorLog(logPath, logOpts...)
	if err != nil {
		return nil, &SetupError{Op: "open error log", Path: logPath, Err: err}
	}

	return &Converter{
		task:    cfg.Task,
		classes: classes,
		outDir:  outDir,
		errLog:  errLog,
	}, nil
}

// OutputDir is the directory the label files and images are written to.
func (c *Converter) OutputDir() string {
	return c.outDir
}

// ErrorLog returns the converter's diagnostic log.
func (c *Converter) ErrorLog() *ErrorLog {
	return c.errLog
}

// Close closes the error log.
func (c *Converter) Close() error {
	return c.errLog.Close()
}

// ConvertShape converts a single shape of an image with the given size. The size must be positive.
func (c *Converter) ConvertShape(s ShapeRecord, imageWidth, imageHeight int) ShapeResult {
	if s.DecodeErr != nil {
		return reject(MalformedPoint, "Label conversion error: %v", s.DecodeErr)
	}
	if s.Label == "" || len(s.Points) == 0 {
		return reject(MissingData, "Label or point data is missing: label=%q points=%v",
			s.Label, s.Points)
	}

	var values []float64
	var err error
	switch c.task {
	case Segmentation:
		if len(s.Points) < 3 {
			return reject(TooFewPoints, "Polygon has too few points: %d", len(s.Points))
		}
		if values, err = polygonFromPoints(s.Points, imageWidth, imageHeight); err != nil {
			return reject(MalformedPoint, "Label conversion error: %v", err)
		}
		if i := firstOutOfUnitRange(values); i >= 0 {
			i &^= 1
			return reject(OutOfRange, "Normalized coordinate is invalid: (%g, %g)",
				values[i], values[i+1])
		}
	default:
		if values, err = bboxFromPoints(s.Points, imageWidth, imageHeight); err != nil {
			return reject(MalformedPoint, "Label conversion error: %v", err)
		}
		if firstOutOfUnitRange(values) >= 0 {
			return reject(OutOfRange, "Normalized coordinates are invalid: %g, %g, %g, %g",
				values[0], values[1], values[2], values[3])
		}
	}

	id := c.classes.ID(s.Label)
	if id == UnknownClass {
		return reject(UnknownClassLabel, "Unknown label: %s", s.Label)
	}

	// The range checks above already guarantee the kind; this checks the rendered text.
	line := LabelLine{ClassID: id, Values: values}
	rendered := line.String()
	kind, err := Classify(rendered)
	if kind != c.task.labelKind() {
		if err == nil {
			err = fmt.Errorf("classified as %s", kind)
		}
		return reject(PostCheckMismatch, "The label is not in the correct format: %s: %v",
			rendered, err)
	}

	return ShapeResult{Line: line}
}

// ConvertFile converts the annotation file of pair, writes its label file and copies the image
// referenced by the annotation into the output directory. Rejections are logged to the error log.
//
// The label file and the image are committed together: if either cannot be written, neither is left
// in the output directory and outputs of an earlier run are kept.
func (c *Converter) ConvertFile(pair FilePair) FileResult {
	path := pair.Annotation
	res := FileResult{Pair: pair}
	Logf("Processing: %s", path)

	fail := func(o Outcome, err error, msg string) FileResult {
		Logf("[WARNING]: %s", msg)
		c.errLog.LogError(path, msg)
		res.Outcome = o
		res.Err = err
		return res
	}

	rec, err := ReadAnnotation(path)
	if err != nil {
		return fail(ReadFailed, err, fmt.Sprintf("File processing error: %v", err))
	}
	if !rec.HasValidSize() {
		return fail(InvalidDimensions, nil,
			fmt.Sprintf("Invalid image dimensions: %dx%d", rec.ImageWidth, rec.ImageHeight))
	}

	res.Shapes = make([]ShapeResult, 0, len(rec.Shapes))
	lines := make([]string, 0, len(rec.Shapes))
	for _, s := range rec.Shapes {
		r := c.ConvertShape(s, rec.ImageWidth, rec.ImageHeight)
		res.Shapes = append(res.Shapes, r)
		if !r.OK() {
			Logf("[WARNING]: %s", r.Detail)
			c.errLog.LogError(path, r.Detail)
			continue
		}
		lines = append(lines, r.Line.String())
	}
	if len(lines) == 0 {
		return fail(NoValidLabels, nil, "Label not found")
	}

	_, baseNoExt, _, err := splitPath(path)
	if err != nil {
		return fail(WriteFailed, err, fmt.Sprintf("File processing error: %v", err))
	}
	labelPath := filepath.Join(c.outDir, baseNoExt+".txt")

	// Fall back to the paired image if the annotation does not name one.
	imageSrc := rec.ImageFile(path)
	if imageSrc == "" {
		imageSrc = pair.Image
	}
	if imageSrc == "" {
		return fail(ImageMissing, errImageNotFound, "Image file not found: no imagePath")
	}
	imageDst := filepath.Join(c.outDir, filepath.Base(imageSrc))

	var fc fileCommit
	if err := fc.stageData(labelPath, []byte(strings.Join(lines, "\n"))); err != nil {
		return fail(WriteFailed, err, fmt.Sprintf("File processing error: %v", err))
	}
	if err := fc.stageCopy(imageDst, imageSrc); err != nil {
		fc.rollback()
		if errors.Is(err, errImageNotFound) {
			return fail(ImageMissing, err, fmt.Sprintf("Image file not found: %s", imageSrc))
		}
		return fail(ImageMissing, err, fmt.Sprintf("Image file cannot be read: %v", err))
	}
	if err := fc.commit(); err != nil {
		return fail(WriteFailed, err, fmt.Sprintf("File processing error: %v", err))
	}

	Logf("Created: %s", labelPath)
	Logf("Copied image: %s to %s", imageSrc, c.outDir)
	res.Outcome = Converted
	res.LabelPath = labelPath
	res.ImagePath = imageDst
	return res
}

// Run converts all pairs, one at a time, and returns the run statistics. Failures of individual
// shapes or files are logged and never stop the run.
func (c *Converter) Run(pairs []FilePair) (RunStatistics, []FileResult) {
	Logf("Converting %d annotation files to YOLO %s format", len(pairs), c.task)

	var stats RunStatistics
	results := make([]FileResult, 0, len(pairs))
	for _, p := range pairs {
		r := c.ConvertFile(p)
		stats.add(r)
		results = append(results, r)
	}
	return stats, results
}
