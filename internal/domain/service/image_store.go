package service

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrImageTooLarge is returned when an upload exceeds the configured size limit.
	ErrImageTooLarge = errors.New("image exceeds the upload size limit")
	// ErrUnsupportedImage is returned for extensions outside the accepted set.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// ImageStore keeps uploaded community images.
type ImageStore interface {
	// Save stores the image read from r and returns its public path.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)

	// Delete removes the image behind a public path. Missing images are ignored.
	Delete(ctx context.Context, publicPath string) error
}
