// Package storage keeps document blobs in an S3-compatible object store.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"io"
	"path"
	"time"
)

// blobPrefix namespaces document blobs inside the bucket.
const blobPrefix = "documents"

// BlobKey returns the object key of one blob version of the given document.
// Every upload gets its own version so a replaced blob stays readable until
// the record pointing at it has moved on.
func BlobKey(documentID, version string) string {
	return path.Join(blobPrefix, documentID, version)
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 to let the backend chunk the stream.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for document blobs.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
