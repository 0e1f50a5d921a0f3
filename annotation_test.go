package yololbl

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnnotation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "img.json", `{
  "version": "5.2.1",
  "flags": {},
  "shapes": [
    {"label": "benign", "points": [[10.5, 20], [30, 40.25], [50, 60]], "shape_type": "polygon",
     "group_id": null, "flags": {}}
  ],
  "imagePath": "img.tiff",
  "imageData": null,
  "imageHeight": 480,
  "imageWidth": 640
}`)

	rec, err := ReadAnnotation(path)
	require.NoError(t, err)
	assert.Equal(t, 640, rec.ImageWidth)
	assert.Equal(t, 480, rec.ImageHeight)
	assert.True(t, rec.HasValidSize())
	require.Len(t, rec.Shapes, 1)
	assert.Equal(t, "benign", rec.Shapes[0].Label)
	assert.Equal(t, "polygon", rec.Shapes[0].ShapeType)
	assert.Equal(t, [][]float64{{10.5, 20}, {30, 40.25}, {50, 60}}, rec.Shapes[0].Points)
	assert.Equal(t, filepath.Join(dir, "img.tiff"), rec.ImageFile(path))
}

func TestReadAnnotation_Defaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "empty.json", `{}`)
	rec, err := ReadAnnotation(path)
	require.NoError(t, err)
	assert.Empty(t, rec.Shapes)
	assert.False(t, rec.HasValidSize())
	assert.Equal(t, "", rec.ImageFile(path))
}

func TestReadAnnotation_Invalid(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.json", `{"shapes": "none"}`)
	_, err := ReadAnnotation(path)
	assert.ErrorContains(t, err, "failed to parse annotation")
}

func TestAnnotationRecord_ImageFile(t *testing.T) {
	t.Parallel()

	ann := filepath.Join("data", "set1", "a.json")
	tests := []struct {
		imagePath string
		want      string
	}{
		{"a.tiff", filepath.Join("data", "set1", "a.tiff")},
		{"../images/a.tiff", filepath.Join("data", "images", "a.tiff")},
		{`..\images\a.tiff`, filepath.Join("data", "images", "a.tiff")},
		{"/abs/a.tiff", filepath.FromSlash("/abs/a.tiff")},
	}
	for _, tt := range tests {
		rec := AnnotationRecord{ImagePath: tt.imagePath}
		assert.Equal(t, tt.want, rec.ImageFile(ann), tt.imagePath)
	}
}

func TestReadAnnotation_MalformedShapes(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "img.json", `{
  "imageWidth": 640.0,
  "imageHeight": 480,
  "shapes": [
    {"label": "benign", "points": [[1, 2], [3, 4]], "shape_type": 5},
    {"label": "benign", "points": [[1, "x"]]},
    {"label": ["benign"], "points": [[1, 2]]},
    42
  ]
}`)

	rec, err := ReadAnnotation(path)
	require.NoError(t, err)
	assert.Equal(t, 640, rec.ImageWidth)
	require.Len(t, rec.Shapes, 4)

	assert.NoError(t, rec.Shapes[0].DecodeErr)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, rec.Shapes[0].Points)
	assert.ErrorContains(t, rec.Shapes[1].DecodeErr, "invalid points")
	assert.Nil(t, rec.Shapes[1].Points)
	assert.ErrorContains(t, rec.Shapes[2].DecodeErr, "invalid label")
	assert.ErrorContains(t, rec.Shapes[3].DecodeErr, "invalid shape")
}

func TestReadAnnotation_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		json    string
		w, h    int
		wantErr string
	}{
		{`{"imageWidth": 200, "imageHeight": 100}`, 200, 100, ""},
		{`{"imageWidth": 200.0, "imageHeight": 1e2}`, 200, 100, ""},
		{`{"imageWidth": -3, "imageHeight": 0}`, -3, 0, ""},
		{`{"imageWidth": 200.5, "imageHeight": 100}`, 0, 0, "imageWidth must be an integer"},
		{`{"imageWidth": 200, "imageHeight": 1e12}`, 0, 0, "imageHeight must be an integer"},
		{`{"imageWidth": "200", "imageHeight": 100}`, 0, 0, "failed to parse annotation"},
	}
	dir := t.TempDir()
	for i, tt := range tests {
		path := writeFile(t, dir, fmt.Sprintf("%d.json", i), tt.json)
		rec, err := ReadAnnotation(path)
		if tt.wantErr != "" {
			assert.ErrorContains(t, err, tt.wantErr, tt.json)
			continue
		}
		require.NoError(t, err, tt.json)
		assert.Equal(t, tt.w, rec.ImageWidth, tt.json)
		assert.Equal(t, tt.h, rec.ImageHeight, tt.json)
	}
}
