// Converts LabelMe polygon annotations to YOLO detection or segmentation labels.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sensorable/yololbl"
)

// options are the command line arguments.
type options struct {
	path          string // The source directory with one subdirectory per image set.
	target        string // The output directory.
	task          string // detection or segmentation.
	classesPath   string // Optional YAML class map.
	imageExt      string // The image file suffix.
	annotationExt string // The annotation file suffix.
	quiet         bool   // Only print the summary.
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "yololbl",
		Short:        "Convert LabelMe JSON annotations to YOLO labels",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return run(out, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.path, "path", "", "The `path` to the source directory containing the files")
	f.StringVar(&opts.target, "target", "",
		"The `path` to the target directory where the converted files will be saved")
	f.StringVar(&opts.task, "task", "", "The task type {detection, segmentation}")
	f.StringVar(&opts.classesPath, "classes", "",
		"The `path` to a YAML class map with a \"classes\" list (default: built-in classes)")
	f.StringVar(&opts.imageExt, "image-ext", yololbl.DefaultImageExt, "The image file `suffix`")
	f.StringVar(&opts.annotationExt, "annotation-ext", yololbl.DefaultAnnotationExt,
		"The annotation file `suffix`")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the summary")

	for _, name := range []string{"path", "target", "task"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (o *options) validate() error {
	if _, err := yololbl.ParseTask(o.task); err != nil {
		return err
	}
	if o.imageExt == "" || o.annotationExt == "" || o.imageExt == o.annotationExt {
		return fmt.Errorf("the image and annotation suffixes must be distinct and non-empty")
	}

	o.path = filepath.Clean(o.path)
	o.target = filepath.Clean(o.target)
	info, err := os.Stat(o.path)
	if err != nil {
		return fmt.Errorf("cannot read source directory %q: %v", o.path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %q is not a directory", o.path)
	}
	if o.path == o.target {
		return fmt.Errorf("the source and target paths cannot be identical")
	}
	return nil
}

func run(out io.Writer, opts options) error {
	if opts.quiet {
		yololbl.SetLogger(nil)
	}
	task, _ := yololbl.ParseTask(opts.task)

	classes := yololbl.DefaultClassMapping()
	if opts.classesPath != "" {
		var err error
		if classes, err = yololbl.LoadClassMapping(opts.classesPath); err != nil {
			return err
		}
	}

	conv, err := yololbl.NewConverter(yololbl.Config{
		Target:  opts.target,
		Task:    task,
		Classes: classes,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			log.Print("Failed to close the error log: ", err)
		}
	}()

	yololbl.Logf("[Started at: %s]", time.Now().Format("2006-01-02 15:04:05"))
	pairing, err := yololbl.PairFiles(opts.path, opts.imageExt, opts.annotationExt, conv.ErrorLog())
	if err != nil {
		return err
	}

	stats, _ := conv.Run(pairing.Pairs)
	return stats.WriteSummary(out, conv.ErrorLog().Path())
}
