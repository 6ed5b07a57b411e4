package uploads

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestDiskUploaderStoresJPEGAndWebP(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := NewDiskUploader(dir, "/media/photos/", 10)

	photos, err := u.Upload(context.Background(), []File{
		{Name: "a.png", ContentType: "image/png", Content: pngBytes(t, 32, 32)},
		{Name: "b.png", ContentType: "image/png", Content: pngBytes(t, 16, 48)},
	})
	require.NoError(t, err)
	require.Len(t, photos, 2)

	for _, photo := range photos {
		assert.NotEmpty(t, photo.PublicID)
		assert.Equal(t, "/media/photos/"+photo.PublicID+"/master.jpg", photo.URL)

		jpg, err := os.ReadFile(filepath.Join(dir, photo.PublicID, "master.jpg"))
		require.NoError(t, err)
		assert.NotEmpty(t, jpg)

		wp, err := os.ReadFile(filepath.Join(dir, photo.PublicID, "master.webp"))
		require.NoError(t, err)
		assert.NotEmpty(t, wp)
	}

	// distinct files get distinct IDs
	assert.NotEqual(t, photos[0].PublicID, photos[1].PublicID)
}

func TestDiskUploaderResizesLargeImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := NewDiskUploader(dir, "/media/photos", 50)

	photos, err := u.Upload(context.Background(), []File{
		{Name: "huge.png", ContentType: "image/png", Content: pngBytes(t, 4096, 1024)},
	})
	require.NoError(t, err)
	require.Len(t, photos, 1)

	f, err := os.Open(filepath.Join(dir, photos[0].PublicID, "master.jpg"))
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestDiskUploaderRejectsNonImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := NewDiskUploader(dir, "/media/photos", 10)

	_, err := u.Upload(context.Background(), []File{
		{Name: "notes.txt", ContentType: "text/plain", Content: []byte("hello world, this is not an image")},
	})
	assert.ErrorContains(t, err, "not an image")
}

func TestDiskUploaderBatchIsAllOrNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := NewDiskUploader(dir, "/media/photos", 10)

	_, err := u.Upload(context.Background(), []File{
		{Name: "good.png", ContentType: "image/png", Content: pngBytes(t, 8, 8)},
		{Name: "bad.bin", ContentType: "application/octet-stream", Content: []byte("garbage that will not decode")},
	})
	require.Error(t, err)

	// the first file's output was rolled back
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		files, err := os.ReadDir(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.Empty(t, files, "no stored files should survive a failed batch")
	}
}

func TestDiskUploaderEnforcesSizeLimit(t *testing.T) {
	t.Parallel()

	u := NewDiskUploader(t.TempDir(), "/media/photos", 1)

	big := make([]byte, 2*1024*1024)
	copy(big, pngBytes(t, 4, 4)) // valid magic bytes, oversized payload

	_, err := u.Upload(context.Background(), []File{
		{Name: "big.png", ContentType: "image/png", Content: big},
	})
	assert.ErrorContains(t, err, "file too large")
}
