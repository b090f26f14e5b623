package storage

import (
	"context"
	"io"
)

// MediaStorage is the folder-scoped media host used for proof-of-payment
// documents. Upload returns a public URL that is stored on the booking;
// a failure aborts the calling request.
type MediaStorage interface {
	// Upload stores the file under folder and returns its public URL.
	Upload(ctx context.Context, reader io.Reader, folder, filename string) (string, error)

	// Open returns the stored file for the download handler.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, key string) error
}
