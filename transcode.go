package yololbl

// TIFF to PNG transcoding of source images.

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// TIFFExtensions are the file suffixes recognised as TIFF images.
var TIFFExtensions = []string{".tiff", ".tif"}

// loadTIFF reads and decodes the TIFF image at path.
func loadTIFF(path string) (img image.Image, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeWithErrCheck(f, &err)

	return tiff.Decode(f)
}

// TranscodeTIFFs converts every TIFF file directly in inDir to a PNG with the same base name in
// outDir, which is created if necessary. PNG encoding is lossless, so the pixel data is preserved.
//
// Files that fail to convert are logged and skipped; their errors are joined and returned after all
// files have been processed. The paths of the written PNGs are returned in any case.
func TranscodeTIFFs(inDir, outDir string) ([]string, error) {
	if filepath.Clean(inDir) == filepath.Clean(outDir) {
		return nil, fmt.Errorf("the input and output directories cannot be identical")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create directory %q: %w", outDir, err)
	}

	var files []string
	for _, ext := range TIFFExtensions {
		f, err := filesByExtInDir(inDir, ext)
		if err != nil {
			return nil, err
		}
		files = append(files, f...)
	}
	Logf("Converting %d TIFF files to PNG", len(files))

	var written []string
	var errs []error
	for _, path := range files {
		_, baseNoExt, _, err := splitPath(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outPath := filepath.Join(outDir, baseNoExt+".png")

		img, err := loadTIFF(path)
		if err != nil {
			Logf("Failed to decode, skipping %q: %v", path, err)
			errs = append(errs, fmt.Errorf("cannot decode %q: %w", path, err))
			continue
		}
		if err := imaging.Save(img, outPath); err != nil {
			Logf("Failed to save, skipping %q: %v", outPath, err)
			errs = append(errs, fmt.Errorf("cannot save %q: %w", outPath, err))
			continue
		}

		Logf("Created: %s", outPath)
		written = append(written, outPath)
	}

	return written, errors.Join(errs...)
}
