package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentease/rentease/internal/core/domain"
	"github.com/rentease/rentease/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubPropertyRepo struct {
	byID      map[string]*domain.Property
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{byID: make(map[string]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("prop_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPropertyRepo) FindAll(_ context.Context) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) FindByOwner(_ context.Context, userID string) ([]*domain.Property, error) {
	out := make([]*domain.Property, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// FindByIDAndOwner enforces the combined filter the real Mongo repo uses:
// an existing listing with a different owner is a miss, not a forbidden.
func (r *stubPropertyRepo) FindByIDAndOwner(_ context.Context, id, userID string) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, id, userID string, in *domain.Property) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPropertyNotFound
	}
	updated := *in
	updated.ID = p.ID
	updated.UserID = p.UserID
	updated.Verified = p.Verified
	updated.CreatedAt = p.CreatedAt
	r.byID[id] = &updated
	clone := updated
	return &clone, nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id, userID string) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPropertyNotFound
	}
	delete(r.byID, id)
	clone := *p
	return &clone, nil
}

// ---------------------------------------------------------------------------
// In-memory stub media store
// ---------------------------------------------------------------------------

type stubMediaStore struct {
	uploads   []string // filenames in upload order
	deletes   []string // URLs in delete order
	uploadErr error
	deleteErr error
}

func (m *stubMediaStore) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	_, _ = io.ReadAll(content)
	m.uploads = append(m.uploads, filename)
	return "https://media.test/" + filename, nil
}

func (m *stubMediaStore) Delete(_ context.Context, url string) error {
	m.deletes = append(m.deletes, url)
	return m.deleteErr
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTestPropertyService() (*PropertyService, *stubPropertyRepo, *stubMediaStore) {
	repo := newStubPropertyRepo()
	media := &stubMediaStore{}
	return NewPropertyService(repo, media, discardLogger), repo, media
}

func sampleFields() ports.PropertyFields {
	return ports.PropertyFields{
		Title:     "Cozy 2BHK near station",
		Type:      "Apartment",
		Location:  "Pune",
		Price:     "15000",
		Deposit:   "45000",
		Beds:      "2",
		Baths:     "1",
		Amenities: []string{"WiFi, Parking , Gym"},
	}
}

func uploads(names ...string) []ports.ImageUpload {
	out := make([]ports.ImageUpload, 0, len(names))
	for _, n := range names {
		out = append(out, ports.ImageUpload{Filename: n, Content: strings.NewReader("img")})
	}
	return out
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestPropertyService_Create_Success(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, err := svc.Create(context.Background(), "user_1", sampleFields(), uploads("a.jpg", "b.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.UserID != "user_1" {
		t.Errorf("expected owner user_1, got %q", created.UserID)
	}
	if len(created.Images) != 2 {
		t.Fatalf("expected 2 image URLs, got %d", len(created.Images))
	}
	if len(media.uploads) != 2 {
		t.Errorf("expected 2 uploads, got %d", len(media.uploads))
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("created property not found: %v", err)
	}
	if len(stored.Images) != 2 {
		t.Errorf("stored image count = %d, want 2", len(stored.Images))
	}
}

func TestPropertyService_Create_NormalizesCommaSeparatedAmenities(t *testing.T) {
	svc, repo, _ := newTestPropertyService()

	created, err := svc.Create(context.Background(), "user_1", sampleFields(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"WiFi", "Parking", "Gym"}
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if !reflect.DeepEqual(stored.Amenities, want) {
		t.Errorf("amenities = %v, want %v", stored.Amenities, want)
	}
}

func TestPropertyService_Create_MultiValueAmenitiesPassThrough(t *testing.T) {
	svc, _, _ := newTestPropertyService()

	fields := sampleFields()
	fields.Amenities = []string{" WiFi ", "Parking"}

	created, err := svc.Create(context.Background(), "user_1", fields, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"WiFi", "Parking"}
	if !reflect.DeepEqual(created.Amenities, want) {
		t.Errorf("amenities = %v, want %v", created.Amenities, want)
	}
}

func TestPropertyService_Create_CapsImagesAtFive(t *testing.T) {
	svc, _, media := newTestPropertyService()

	created, err := svc.Create(context.Background(), "user_1", sampleFields(),
		uploads("1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg", "7.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created.Images) != domain.MaxPropertyImages {
		t.Errorf("image count = %d, want %d", len(created.Images), domain.MaxPropertyImages)
	}
	if len(media.uploads) != domain.MaxPropertyImages {
		t.Errorf("uploads = %d, want %d", len(media.uploads), domain.MaxPropertyImages)
	}
}

func TestPropertyService_Create_UploadError(t *testing.T) {
	svc, repo, media := newTestPropertyService()
	media.uploadErr = errors.New("media unavailable")

	_, err := svc.Create(context.Background(), "user_1", sampleFields(), uploads("a.jpg"))
	if err == nil {
		t.Fatal("expected error when media store fails, got nil")
	}
	if len(repo.byID) != 0 {
		t.Error("no property should be stored when upload fails")
	}
}

func TestPropertyService_Create_RepoError(t *testing.T) {
	svc, repo, _ := newTestPropertyService()
	repo.createErr = errors.New("db unavailable")

	_, err := svc.Create(context.Background(), "user_1", sampleFields(), nil)
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Ownership tests
// ---------------------------------------------------------------------------

func TestPropertyService_Update_NotOwned_NotFound(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "owner", sampleFields(), uploads("a.jpg"))

	_, err := svc.Update(context.Background(), ports.UpdatePropertyInput{
		ID:     created.ID,
		UserID: "intruder",
		Fields: ports.PropertyFields{Title: "hijacked"},
	})
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected not-found for non-owner, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Title != created.Title {
		t.Error("property must be unchanged after rejected update")
	}
	if len(media.deletes) != 0 {
		t.Error("no image deletions may happen for a rejected update")
	}
}

func TestPropertyService_Delete_NotOwned_NotFound(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "owner", sampleFields(), uploads("a.jpg"))

	err := svc.Delete(context.Background(), created.ID, "intruder")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected not-found for non-owner, got %v", err)
	}

	if _, err := repo.FindByID(context.Background(), created.ID); err != nil {
		t.Error("property must still exist after rejected delete")
	}
	if len(media.deletes) != 0 {
		t.Error("no image deletions may happen for a rejected delete")
	}
}

// ---------------------------------------------------------------------------
// Update reconciliation tests
// ---------------------------------------------------------------------------

func TestPropertyService_Update_ReconcilesImages(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "user_1", sampleFields(),
		uploads("keep.jpg", "drop1.jpg", "drop2.jpg"))
	kept := created.Images[:1]
	dropped := created.Images[1:]

	updated, err := svc.Update(context.Background(), ports.UpdatePropertyInput{
		ID:             created.ID,
		UserID:         "user_1",
		Fields:         sampleFields(),
		ExistingImages: kept,
		NewImages:      uploads("new.jpg"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Final list = kept ++ new, in order.
	if len(updated.Images) != 2 {
		t.Fatalf("final image count = %d, want 2", len(updated.Images))
	}
	if updated.Images[0] != kept[0] {
		t.Errorf("kept image must come first, got %v", updated.Images)
	}

	// Every removed URL is attempted exactly once.
	if !reflect.DeepEqual(media.deletes, dropped) {
		t.Errorf("deletes = %v, want %v", media.deletes, dropped)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if !reflect.DeepEqual(stored.Images, updated.Images) {
		t.Errorf("stored images = %v, want %v", stored.Images, updated.Images)
	}
}

func TestPropertyService_Update_ImageDeleteFailureDoesNotAbort(t *testing.T) {
	svc, _, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "user_1", sampleFields(),
		uploads("a.jpg", "b.jpg"))
	media.deleteErr = errors.New("media unavailable")

	updated, err := svc.Update(context.Background(), ports.UpdatePropertyInput{
		ID:     created.ID,
		UserID: "user_1",
		Fields: sampleFields(),
	})
	if err != nil {
		t.Fatalf("delete failures must not fail the update: %v", err)
	}
	if len(updated.Images) != 0 {
		t.Errorf("final image list should be empty, got %v", updated.Images)
	}
	// Both removals were still attempted.
	if len(media.deletes) != 2 {
		t.Errorf("delete attempts = %d, want 2", len(media.deletes))
	}
}

func TestPropertyService_Update_OverwritesScalarFields(t *testing.T) {
	svc, repo, _ := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "user_1", sampleFields(), nil)

	// A request carrying only a title wipes every other scalar field.
	_, err := svc.Update(context.Background(), ports.UpdatePropertyInput{
		ID:     created.ID,
		UserID: "user_1",
		Fields: ports.PropertyFields{Title: "Only title"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Title != "Only title" {
		t.Errorf("title = %q", stored.Title)
	}
	if stored.Location != "" || stored.Price != "" {
		t.Errorf("omitted fields must be overwritten to empty, got location=%q price=%q", stored.Location, stored.Price)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestPropertyService_Delete_RemovesRecordAndImages(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "user_1", sampleFields(),
		uploads("a.jpg", "b.jpg"))

	if err := svc.Delete(context.Background(), created.ID, "user_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Error("property must be gone after delete")
	}
	if !reflect.DeepEqual(media.deletes, created.Images) {
		t.Errorf("deletes = %v, want every stored URL %v", media.deletes, created.Images)
	}
}

func TestPropertyService_Delete_ImageFailuresDoNotRollBack(t *testing.T) {
	svc, repo, media := newTestPropertyService()

	created, _ := svc.Create(context.Background(), "user_1", sampleFields(), uploads("a.jpg"))
	media.deleteErr = errors.New("media unavailable")

	if err := svc.Delete(context.Background(), created.ID, "user_1"); err != nil {
		t.Fatalf("image delete failures must not fail the delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Error("record deletion must stand despite image failures")
	}
}

// ---------------------------------------------------------------------------
// Listing tests
// ---------------------------------------------------------------------------

func TestPropertyService_ListByOwner_ScopesToOwner(t *testing.T) {
	svc, _, _ := newTestPropertyService()

	_, _ = svc.Create(context.Background(), "user_1", sampleFields(), nil)
	_, _ = svc.Create(context.Background(), "user_1", sampleFields(), nil)
	_, _ = svc.Create(context.Background(), "user_2", sampleFields(), nil)

	mine, err := svc.ListByOwner(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("owner listing count = %d, want 2", len(mine))
	}
	for _, p := range mine {
		if p.UserID != "user_1" {
			t.Errorf("foreign property leaked into owner listing: %+v", p)
		}
	}
}

func TestPropertyService_Get_Missing_NotFound(t *testing.T) {
	svc, _, _ := newTestPropertyService()

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Amenities normalization table
// ---------------------------------------------------------------------------

func TestNormalizeAmenities(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"comma separated", []string{"WiFi, Parking,Gym"}, []string{"WiFi", "Parking", "Gym"}},
		{"multi value", []string{"WiFi", "Parking"}, []string{"WiFi", "Parking"}},
		{"trims whitespace", []string{"  WiFi  ,  Gym  "}, []string{"WiFi", "Gym"}},
		{"drops empties", []string{"WiFi,,Gym,"}, []string{"WiFi", "Gym"}},
		{"nil input", nil, []string{}},
		{"preserves order", []string{"c,a,b"}, []string{"c", "a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAmenities(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("NormalizeAmenities(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
