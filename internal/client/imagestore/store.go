// Package imagestore keeps dish photos. With a bucket configured photos go
// to S3-compatible object storage through presigned URLs; otherwise they are
// kept inline as data URLs in the dish record.
package imagestore

import (
	"context"
	"encoding/base64"
	"strings"
)

// Store saves image bytes and resolves stored references to URLs.
type Store interface {
	// Put saves data and returns the reference to keep in the dish.
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	// URL turns a reference into something a viewer can open.
	URL(ctx context.Context, ref string) (string, error)
}

// New returns an S3Store when cfg names a bucket and an InlineStore otherwise.
func New(cfg S3Config) Store {
	if cfg.Bucket == "" {
		return InlineStore{}
	}
	return NewS3Store(cfg)
}

// IsDirect reports whether ref is already usable as a URL.
func IsDirect(ref string) bool {
	return strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}

// InlineStore embeds images into their references.
type InlineStore struct{}

func (InlineStore) Put(_ context.Context, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (InlineStore) URL(_ context.Context, ref string) (string, error) {
	return ref, nil
}
