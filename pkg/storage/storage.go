package storage

import "context"

// BlobStore downloads raw file content by its storage path. The surrounding
// app owns uploads and bucket management; ingestion only ever reads.
type BlobStore interface {
	Download(ctx context.Context, path string) ([]byte, error)
}
