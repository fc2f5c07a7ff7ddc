package ports

import (
	"context"
	"io"
)

// MediaStore abstracts the external image host.
//
// Contract: URLs returned by Upload must embed a predictable identifier in
// their final path segment so Delete can derive it (last segment, file
// extension stripped). This mapping is provider-specific and lives inside
// the implementation, never in callers.
type MediaStore interface {
	// Upload stores the image content and returns a stable public URL.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
	// Delete removes the image addressed by a URL previously returned by
	// Upload.
	Delete(ctx context.Context, url string) error
}
