// Package storage persists product images through the gocloud.dev blob
// abstraction so local disk and cloud buckets share one code path.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// bucket scheme
	"gocloud.dev/gcerrors"

	"storefront/config"
	"storefront/internal/domain/service"
)

// blobImageStore implements the ImageStore interface on top of a blob bucket.
type blobImageStore struct {
	bucket    *blob.Bucket
	urlPrefix string
	logger    *slog.Logger
}

// Params holds dependencies for the image store, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and returns it as a service.ImageStore.
func New(params Params) (service.ImageStore, error) {
	if params.Config.Images == nil || params.Config.Images.BucketURL == "" {
		return nil, errors.New("images bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, params.Config.Images.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStore{
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(params.Config.Images.URLPrefix, "/"),
		logger:    params.Logger,
	}, nil
}

// Save writes the image bytes under a freshly generated unique filename that
// keeps the original extension, and returns the public relative path.
func (s *blobImageStore) Save(ctx context.Context, originalFilename string, contents io.Reader) (string, error) {
	filename := uuid.New().String() + strings.ToLower(path.Ext(originalFilename))

	writer, err := s.bucket.NewWriter(ctx, filename, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, contents); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write image")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image write")
	}

	s.logger.Debug("Stored product image", slog.String("filename", filename))

	return s.urlPrefix + "/" + filename, nil
}

// Delete removes a previously stored image by its public relative path.
// Deleting a path that no longer exists is not an error.
func (s *blobImageStore) Delete(ctx context.Context, imagePath string) error {
	if imagePath == "" {
		return nil
	}

	// The stored key is just the filename; strip the public prefix.
	key := path.Base(imagePath)

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete image")
	}

	s.logger.Debug("Deleted product image", slog.String("filename", key))

	return nil
}
