// Package storage keeps uploaded images in a gocloud.dev blob bucket.
package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"agriconnect/config"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const jpegQuality = 80

var rawContentTypes = map[string]string{
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Params defines the dependencies of the image store
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type blobImageStore struct {
	bucket       *blob.Bucket
	publicPrefix string
	maxWidth     uint
	maxBytes     int64
}

// NewImageStore opens the configured bucket and closes it on shutdown.
func NewImageStore(params Params) (service.ImageStore, error) {
	uc := params.Config.Uploads
	if uc == nil || uc.BucketURL == "" {
		return nil, errors.New("uploads.bucketUrl is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, uc.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", uc.BucketURL)
	}
	params.Logger.Info("Opened upload bucket", slog.String("url", uc.BucketURL))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobImageStore(bucket, uc.PublicPrefix, uc.MaxWidth, uc.MaxBytes), nil
}

// NewBlobImageStore wraps an open bucket. A zero maxWidth keeps the original size
// and a zero maxBytes disables the size limit.
func NewBlobImageStore(bucket *blob.Bucket, publicPrefix string, maxWidth uint, maxBytes int64) service.ImageStore {
	return &blobImageStore{
		bucket:       bucket,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxWidth:     maxWidth,
		maxBytes:     maxBytes,
	}
}

// Save stores png and jpeg uploads re-encoded as JPEG no wider than maxWidth;
// gif and webp are kept as uploaded.
func (s *blobImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := s.readLimited(r)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var (
		key         string
		contentType string
		payload     []byte
	)

	switch ext {
	case ".png", ".jpg", ".jpeg":
		payload, err = s.reencode(data, ext)
		if err != nil {
			return "", err
		}
		key = uuid.NewString() + ".jpg"
		contentType = "image/jpeg"
	default:
		ct, ok := rawContentTypes[ext]
		if !ok {
			return "", errors.Wrap(service.ErrUnsupportedImage, ext)
		}
		payload = data
		key = uuid.NewString() + ext
		contentType = ct
	}

	if err := s.bucket.WriteAll(ctx, key, payload, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrap(err, "failed to write image to bucket")
	}

	return s.publicPrefix + "/" + key, nil
}

// Delete removes the blob behind a path returned by Save.
func (s *blobImageStore) Delete(ctx context.Context, publicPath string) error {
	if publicPath == "" {
		return nil
	}

	key := strings.TrimPrefix(strings.TrimPrefix(publicPath, s.publicPrefix), "/")
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete image from bucket")
	}

	return nil
}

func (s *blobImageStore) readLimited(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		data, err := io.ReadAll(r)

		return data, errors.WithStack(err)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, service.ErrImageTooLarge
	}

	return data, nil
}

func (s *blobImageStore) reencode(data []byte, ext string) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	if ext == ".png" {
		img, err = png.Decode(bytes.NewReader(data))
	} else {
		img, err = jpeg.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	if s.maxWidth > 0 && uint(img.Bounds().Dx()) > s.maxWidth {
		img = resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}

	return buf.Bytes(), nil
}
