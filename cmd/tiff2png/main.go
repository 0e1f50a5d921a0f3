// Converts the TIFF images of a directory to PNG.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sensorable/yololbl"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var inDir, outDir string

	cmd := &cobra.Command{
		Use:          "tiff2png",
		Short:        "Convert every TIFF image in a directory to PNG",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			written, err := yololbl.TranscodeTIFFs(filepath.Clean(inDir), filepath.Clean(outDir))
			_, _ = fmt.Fprintf(out, "Converted %d images to %s\n", len(written), outDir)
			return err
		},
	}

	cmd.Flags().StringVar(&inDir, "input", "", "The `path` to the directory with the TIFF files")
	cmd.Flags().StringVar(&outDir, "output", "", "The `path` to the PNG output directory")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
