package uploads

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMaxUploadSizeMB = 10
	masterMaxSize          = 2048
	jpegQuality            = 82
	webpQuality            = 70
)

// DiskUploader validates, normalizes and stores photos on the local
// filesystem. Each photo gets a generated PublicID directory containing a
// JPEG master and a WebP copy. Used in development and tests; production
// deployments use the S3 uploader.
type DiskUploader struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewDiskUploader creates an uploader rooted at dir, serving under baseURL.
func NewDiskUploader(dir, baseURL string, maxUploadSizeMB int) *DiskUploader {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &DiskUploader{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload processes each file in order. Any failure removes everything
// written so far and fails the batch.
func (u *DiskUploader) Upload(_ context.Context, files []File) ([]UploadedPhoto, error) {
	photos := make([]UploadedPhoto, 0, len(files))
	var written []string

	for _, f := range files {
		photo, paths, err := u.store(f)
		if err != nil {
			cleanupFiles(written)
			return nil, err
		}
		written = append(written, paths...)
		photos = append(photos, photo)
	}
	return photos, nil
}

func (u *DiskUploader) store(f File) (UploadedPhoto, []string, error) {
	if len(f.Content) == 0 {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: empty file", f.Name)
	}
	if int64(len(f.Content)) > u.maxBytes {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: file too large (max %dMB)", f.Name, u.maxBytes/(1024*1024))
	}
	if detected := http.DetectContentType(f.Content); !strings.HasPrefix(detected, "image/") {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: not an image (%s)", f.Name, detected)
	}

	decoded, _, err := image.Decode(bytes.NewReader(f.Content))
	if err != nil {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: invalid image: %w", f.Name, err)
	}
	master := resizeToFit(decoded, masterMaxSize, masterMaxSize)

	encodedJPG, err := encodeJPEG(master, jpegQuality)
	if err != nil {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: encode jpeg: %w", f.Name, err)
	}
	encodedWebP, err := encodeWebP(master, webpQuality)
	if err != nil {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: encode webp: %w", f.Name, err)
	}

	publicID := uuid.NewString()
	jpgPath := filepath.Join(u.dir, publicID, "master.jpg")
	webpPath := filepath.Join(u.dir, publicID, "master.webp")

	if err := writeBytesToFile(jpgPath, encodedJPG); err != nil {
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: %w", f.Name, err)
	}
	if err := writeBytesToFile(webpPath, encodedWebP); err != nil {
		cleanupFiles([]string{jpgPath})
		return UploadedPhoto{}, nil, fmt.Errorf("upload %s: %w", f.Name, err)
	}

	return UploadedPhoto{
		URL:      u.baseURL + "/" + publicID + "/master.jpg",
		PublicID: publicID,
	}, []string{jpgPath, webpPath}, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW, newH := int(float64(w)*scale), int(float64(h)*scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func cleanupFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
