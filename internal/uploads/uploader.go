// Package uploads implements the photo upload boundary: raw file blobs in,
// hosted {url, publicId} pairs out.
package uploads

import "context"

// File is one raw uploaded file blob.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadedPhoto is the hosted result for one uploaded file.
type UploadedPhoto struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader stores a batch of photos. Implementations must preserve input
// order and treat the batch as all-or-nothing: any individual failure fails
// the whole call.
type Uploader interface {
	Upload(ctx context.Context, files []File) ([]UploadedPhoto, error)
}
