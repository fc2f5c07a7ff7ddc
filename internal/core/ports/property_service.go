package ports

import (
	"context"
	"io"

	"github.com/rentease/rentease/internal/core/domain"
)

// ImageUpload is a single image file submitted with a create or update
// request. Content is read exactly once during upload.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// PropertyFields carries the scalar listing fields plus the raw amenities
// input. Amenities may arrive as multiple form values or as a single
// comma-separated string; the service normalizes either shape.
type PropertyFields struct {
	Title       string
	Type        string
	Location    string
	Price       string
	Deposit     string
	Description string
	Beds        string
	Baths       string
	SqFt        string
	Gender      string
	Furnishing  string
	Phone       string
	Amenities   []string
}

// UpdatePropertyInput carries an update request. ExistingImages lists the
// stored image URLs the caller wants to keep; everything else previously
// stored is released from the media store. NewImages are appended after
// the kept set.
type UpdatePropertyInput struct {
	ID             string
	UserID         string
	Fields         PropertyFields
	ExistingImages []string
	NewImages      []ImageUpload
}

// PropertyService defines the listing use-cases.
type PropertyService interface {
	List(ctx context.Context) ([]*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Property, error)
	Create(ctx context.Context, userID string, fields PropertyFields, images []ImageUpload) (*domain.Property, error)
	Update(ctx context.Context, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id, userID string) error
}
