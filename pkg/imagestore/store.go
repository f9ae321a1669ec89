// Package imagestore wraps the external object store that hosts property
// images. Images are addressed externally by URL and internally by a public
// ID derived from the URL path.
package imagestore

import (
	"context"
	"path"
	"strings"
)

// Store is the image-hosting collaborator.
//
// Delete is best-effort by contract: callers are expected to log and swallow
// its errors; an unreachable image store must never fail a record mutation.
type Store interface {
	// Upload stores the image bytes under the given folder and returns the
	// public URL of the hosted image.
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)

	// Delete removes the image identified by a public ID (see PublicID).
	Delete(ctx context.Context, publicID string) error

	// Recognizes reports whether the URL points at this store. URLs from
	// other hosts are left alone during cascades.
	Recognizes(url string) bool
}

// PublicID derives the store identifier from an image URL: the last two
// path segments with the file extension stripped.
//
//	https://cdn.example.com/akxton/properties/ab12cd.jpg → properties/ab12cd
func PublicID(url string) string {
	segments := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(segments) < 2 {
		return strings.TrimSuffix(url, path.Ext(url))
	}
	last := segments[len(segments)-2:]
	joined := strings.Join(last, "/")
	if idx := strings.Index(joined, "."); idx != -1 {
		joined = joined[:idx]
	}
	return joined
}
