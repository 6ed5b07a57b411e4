package uploads

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader stores photos as public objects in an S3 bucket. The object key
// doubles as the photo's PublicID.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	region    string
	keyPrefix string
}

// NewS3Uploader builds an uploader from the ambient AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, region, keyPrefix string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 uploader: bucket is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3 uploader: load aws config: %w", err)
	}
	return &S3Uploader{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    bucket,
		region:    region,
		keyPrefix: keyPrefix,
	}, nil
}

// Upload puts every file into the bucket in order. The first failure aborts
// the batch.
func (u *S3Uploader) Upload(ctx context.Context, files []File) ([]UploadedPhoto, error) {
	photos := make([]UploadedPhoto, 0, len(files))
	for _, f := range files {
		key := path.Join(u.keyPrefix, time.Now().UTC().Format("20060102150405")+"-"+uuid.NewString()+path.Ext(f.Name))
		_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(f.Content),
			ContentType: aws.String(f.ContentType),
		})
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		photos = append(photos, UploadedPhoto{URL: u.objectURL(key), PublicID: key})
	}
	return photos, nil
}

func (u *S3Uploader) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
