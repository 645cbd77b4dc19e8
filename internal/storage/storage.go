package storage

import "context"

// ObjectInfo identifies a remote dataset object.
type ObjectInfo struct {
	Key string
}

// ObjectStorage captures the minimal operations the dataset watcher needs
// against an S3-compatible bucket.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
}
