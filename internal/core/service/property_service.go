package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentease/rentease/internal/api/metrics"
	"github.com/rentease/rentease/internal/core/domain"
	"github.com/rentease/rentease/internal/core/ports"
)

// PropertyService implements the listing use-cases on top of the
// repository and the media store.
type PropertyService struct {
	repo   ports.PropertyRepository
	media  ports.MediaStore
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, media ports.MediaStore, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, media: media, logger: logger}
}

func (s *PropertyService) List(ctx context.Context) ([]*domain.Property, error) {
	return s.repo.FindAll(ctx)
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) ListByOwner(ctx context.Context, userID string) ([]*domain.Property, error) {
	return s.repo.FindByOwner(ctx, userID)
}

// Create uploads the submitted images (capped at domain.MaxPropertyImages)
// and persists a new listing owned by userID.
func (s *PropertyService) Create(ctx context.Context, userID string, fields ports.PropertyFields, images []ports.ImageUpload) (*domain.Property, error) {
	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	p := propertyFromFields(fields)
	p.UserID = userID
	p.Images = urls
	p.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create property")
		return nil, err
	}

	metrics.PropertiesCreatedTotal.WithLabelValues(created.Type).Inc()
	s.logger.Info().Str("property_id", created.ID).Str("user_id", userID).Int("images", len(urls)).Msg("property created")
	return created, nil
}

// Update replaces the scalar fields of an owned listing and reconciles its
// image set: the URLs in input.ExistingImages are kept, new uploads are
// appended, and every previously stored URL absent from the final set is
// released from the media store best-effort.
//
// Scalar fields are overwritten unconditionally with the request values,
// including to empty when absent.
func (s *PropertyService) Update(ctx context.Context, input ports.UpdatePropertyInput) (*domain.Property, error) {
	current, err := s.repo.FindByIDAndOwner(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploadImages(ctx, input.NewImages)
	if err != nil {
		return nil, err
	}

	final := append(append([]string{}, input.ExistingImages...), uploaded...)
	s.deleteImages(ctx, removedImages(current.Images, final))

	p := propertyFromFields(input.Fields)
	p.Images = final

	updated, err := s.repo.Update(ctx, input.ID, input.UserID, p)
	if err != nil {
		s.logger.Error().Err(err).Str("property_id", input.ID).Msg("failed to update property")
		return nil, err
	}

	s.logger.Info().Str("property_id", input.ID).Int("kept", len(input.ExistingImages)).Int("added", len(uploaded)).Msg("property updated")
	return updated, nil
}

// Delete removes an owned listing, then releases every one of its images
// from the media store. Image deletion failures are logged and do not roll
// back the record deletion.
func (s *PropertyService) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}

	s.deleteImages(ctx, deleted.Images)
	s.logger.Info().Str("property_id", id).Str("user_id", userID).Msg("property deleted")
	return nil
}

func (s *PropertyService) uploadImages(ctx context.Context, images []ports.ImageUpload) ([]string, error) {
	if len(images) > domain.MaxPropertyImages {
		images = images[:domain.MaxPropertyImages]
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.media.Upload(ctx, img.Filename, img.Content)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", img.Filename).Msg("image upload failed")
			return nil, err
		}
		metrics.ImagesUploadedTotal.Inc()
		urls = append(urls, url)
	}
	return urls, nil
}

// deleteImages removes each URL from the media store sequentially,
// fire-and-continue: a failure on one never blocks the rest.
func (s *PropertyService) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.media.Delete(ctx, url); err != nil {
			metrics.ImageDeleteFailuresTotal.Inc()
			s.logger.Error().Err(err).Str("url", url).Msg("media delete failed")
		}
	}
}

// removedImages returns the URLs present in old but not in final.
func removedImages(old, final []string) []string {
	keep := make(map[string]struct{}, len(final))
	for _, u := range final {
		keep[u] = struct{}{}
	}
	var removed []string
	for _, u := range old {
		if _, ok := keep[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}

// propertyFromFields builds a Property from the request fields, running
// amenities normalization.
func propertyFromFields(f ports.PropertyFields) *domain.Property {
	return &domain.Property{
		Title:       f.Title,
		Type:        f.Type,
		Location:    f.Location,
		Price:       f.Price,
		Deposit:     f.Deposit,
		Description: f.Description,
		Beds:        f.Beds,
		Baths:       f.Baths,
		SqFt:        f.SqFt,
		Gender:      f.Gender,
		Furnishing:  f.Furnishing,
		Phone:       f.Phone,
		Amenities:   NormalizeAmenities(f.Amenities),
	}
}

// NormalizeAmenities turns the raw amenities input into an ordered list of
// trimmed strings. A single value containing commas is treated as a
// comma-separated list; multiple values pass through as-is. Empty entries
// are dropped, order is preserved.
func NormalizeAmenities(raw []string) []string {
	values := raw
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		values = strings.Split(raw[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
