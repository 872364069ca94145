package utils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sample.png":
			w.Write(data)
		case "/notes.txt":
			w.Write([]byte("just some text"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f, err := DownloadImage(context.Background(), srv.URL+"/sample.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	_, format, err := image.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = DownloadImage(context.Background(), srv.URL+"/notes.txt")
	assert.Error(t, err)

	_, err = DownloadImage(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidUrl("https://github.com/esimov/sketch/"))
	assert.False(IsValidUrl("testdata/sample.png"))
	assert.False(IsValidUrl("-"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "sample.png")
	require.NoError(t, os.WriteFile(img, pngBytes(t), 0o644))

	ftype, err := DetectContentType(img)
	require.NoError(t, err)
	assert.True(t, strings.Contains(ftype, "image"), "got %v", ftype)

	txt := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(txt, nil, 0o644))
	ftype, err = DetectContentType(txt)
	require.NoError(t, err)
	assert.False(t, strings.Contains(ftype, "image"))
}
