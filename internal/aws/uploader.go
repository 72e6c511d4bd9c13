package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

// Uploader stores product images in S3 and hands back a public URL.
type Uploader struct {
	S3            S3API
	Bucket        string
	PublicBaseURL string // optional CDN/base URL; defaults to the S3 virtual-hosted URL
	keyPrefix     string
}

func NewUploader(client S3API, bucket, publicBaseURL string) *Uploader {
	return &Uploader{
		S3:            client,
		Bucket:        bucket,
		PublicBaseURL: publicBaseURL,
		keyPrefix:     "bake-bliss/products",
	}
}

// Upload writes the image under a random key and returns its public URL.
// filename is only used for the extension.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", u.keyPrefix, uuid.NewString(), strings.ToLower(path.Ext(filename)))

	_, err := u.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.Bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return u.publicURL(key), nil
}

// Delete removes a previously uploaded image by its public URL. A missing
// object is not an error; anything else is reported so the caller can log it.
func (u *Uploader) Delete(ctx context.Context, imageURL string) error {
	key, ok := u.keyFromURL(imageURL)
	if !ok {
		return nil
	}
	_, err := u.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &u.Bucket,
		Key:    &key,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (u *Uploader) publicURL(key string) string {
	if u.PublicBaseURL != "" {
		return strings.TrimSuffix(u.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.Bucket, key)
}

func (u *Uploader) keyFromURL(imageURL string) (string, bool) {
	idx := strings.Index(imageURL, u.keyPrefix+"/")
	if idx < 0 {
		return "", false
	}
	return imageURL[idx:], true
}
