package ports

import (
	"context"

	"github.com/rentease/rentease/internal/core/domain"
)

// PropertyRepository defines persistence operations for property listings.
//
// Owner-scoped methods (FindByIDAndOwner, Update, Delete) apply the
// combined {_id, user_id} filter; a listing that exists but belongs to a
// different owner surfaces as domain.ErrPropertyNotFound, deliberately
// indistinguishable from a missing one.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	FindAll(ctx context.Context) ([]*domain.Property, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	FindByOwner(ctx context.Context, userID string) ([]*domain.Property, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*domain.Property, error)
	// Update replaces the mutable fields of the listing identified by
	// {id, userID} with the values in p and returns the updated document.
	Update(ctx context.Context, id, userID string, p *domain.Property) (*domain.Property, error)
	// Delete removes the listing identified by {id, userID} and returns
	// the deleted document so callers can release its images.
	Delete(ctx context.Context, id, userID string) (*domain.Property, error)
}
