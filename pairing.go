package yololbl

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Default file extensions of the input layout.
const (
	DefaultImageExt      = ".tiff"
	DefaultAnnotationExt = ".json"
)

// FilePair is an image and its annotation file.
type FilePair struct {
	Image      string
	Annotation string
}

// Pairing is the result of matching images to annotations.
type Pairing struct {
	Pairs             []FilePair // Sorted by annotation path.
	OrphanImages      []string   // Images without an annotation file.
	OrphanAnnotations []string   // Annotation files without an image.
}

// pairKey identifies a file by its directory and base name without extension.
func pairKey(path, ext string) string {
	return filepath.Join(filepath.Dir(path), filepath.Base(path[:len(path)-len(ext)]))
}

// PairFiles finds the image files (suffix imageExt) and annotation files (suffix annotationExt) in
// the subdirectories directly below root and matches them by directory and base name.
//
// Count mismatches and every unmatched file are reported to errLog (which may be nil); they never
// cause an error. An error is only returned if root or one of its subdirectories cannot be read.
func PairFiles(root, imageExt, annotationExt string, errLog *ErrorLog) (Pairing, error) {
	dirs, err := subDirs(root)
	if err != nil {
		return Pairing{}, err
	}

	var images, annotations []string
	for _, dir := range dirs {
		imgs, err := filesByExtInDir(dir, imageExt)
		if err != nil {
			return Pairing{}, err
		}
		anns, err := filesByExtInDir(dir, annotationExt)
		if err != nil {
			return Pairing{}, err
		}
		images = append(images, imgs...)
		annotations = append(annotations, anns...)
	}
	sort.Strings(images)
	sort.Strings(annotations)

	warn := func(source, msg string) {
		Logf("[WARNING]: %s", msg)
		errLog.LogError(source, msg)
	}

	if len(images) != len(annotations) {
		warn("", fmt.Sprintf("Image (%d) and annotation (%d) file counts do not match",
			len(images), len(annotations)))
	}

	imagesByKey := make(map[string]string, len(images))
	for _, img := range images {
		imagesByKey[pairKey(img, imageExt)] = img
	}

	var p Pairing
	matched := make(map[string]bool, len(annotations))
	for _, ann := range annotations {
		key := pairKey(ann, annotationExt)
		img, found := imagesByKey[key]
		if !found {
			warn(ann, fmt.Sprintf("No image file for annotation: %s", ann))
			p.OrphanAnnotations = append(p.OrphanAnnotations, ann)
			continue
		}
		matched[key] = true
		p.Pairs = append(p.Pairs, FilePair{Image: img, Annotation: ann})
	}
	for _, img := range images {
		if !matched[pairKey(img, imageExt)] {
			warn(img, fmt.Sprintf("No annotation file for image: %s", img))
			p.OrphanImages = append(p.OrphanImages, img)
		}
	}

	Logf("Found %d image/annotation pairs in %q", len(p.Pairs), root)
	return p, nil
}
