package storage

import "context"

// ObjectStore persists byte blobs at a path and hands back a publicly
// resolvable URL. Receipts and gallery media both go through it.
type ObjectStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}
