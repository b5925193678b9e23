package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

// BundleUploader zips a generated project tree and stores it in S3 so
// a build pipeline can pick it up.
type BundleUploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewBundleUploader creates an uploader targeting bucket under prefix.
func NewBundleUploader(client *s3.Client, bucket, prefix string) *BundleUploader {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BundleUploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload zips dir and puts it at {prefix}{appKey}/{timestamp}.zip,
// returning the object key.
func (u *BundleUploader) Upload(ctx context.Context, appKey, dir string) (string, error) {
	buf, err := zipTree(dir)
	if err != nil {
		return "", errors.New(errors.CodeUploadFailed).
			WithDetail(fmt.Sprintf("could not archive %q: %v", dir, err)).
			Wrap(err)
	}

	key := fmt.Sprintf("%s%s/%s.zip", u.prefix, appKey, time.Now().UTC().Format("20060102T150405Z"))

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/zip"),
		Metadata: map[string]string{
			"app-key":     appKey,
			"upload-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New(errors.CodeUploadFailed).
			WithDetail(fmt.Sprintf("put object %s/%s failed: %v", u.bucket, key, err)).
			Wrap(err)
	}

	return key, nil
}

// zipTree archives every regular file under dir with paths relative to
// dir root.
func zipTree(dir string) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}
