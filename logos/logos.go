// Package logos serves kring logo assets keyed by kring name. Assets
// live either in a local directory or in an S3-compatible bucket,
// selected by config; the surface is read-only — logos are provisioned
// out of band before the event.
package logos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sdevrieze/urenloop/config"
)

// ErrNotFound indicates no asset exists for the requested kring name.
var ErrNotFound = errors.New("logo not found")

// IsNotFound reports whether err means a missing asset rather than a
// backend failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Store resolves a kring name to its logo image.
type Store interface {
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// Open selects a Store implementation from config.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.LogoDriver {
	case "fs":
		return NewFilesystem(cfg.LogoDir), nil
	case "s3":
		return NewS3(ctx, S3Config{
			Bucket:   cfg.LogoBucket,
			Region:   cfg.LogoRegion,
			Endpoint: cfg.LogoEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown logo driver %q", cfg.LogoDriver)
	}
}

// key maps a kring name to its asset key: spaces stripped, .png suffix.
func key(name string) string {
	return strings.ReplaceAll(name, " ", "") + ".png"
}
