package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentease/rentease/internal/core/domain"
	"github.com/rentease/rentease/internal/core/ports"
)

// propertyResponse wraps a single listing.
type propertyResponse struct {
	Message  string           `json:"message,omitempty"`
	Property *domain.Property `json:"property"`
}

// propertiesResponse wraps a listing collection.
type propertiesResponse struct {
	Properties []*domain.Property `json:"properties"`
}

// formFields maps the multipart form values onto the service input.
// Missing values come through as empty strings, which update writes
// through unchanged.
func formFields(form *multipart.Form) ports.PropertyFields {
	get := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return ports.PropertyFields{
		Title:       get("title"),
		Type:        get("type"),
		Location:    get("location"),
		Price:       get("price"),
		Deposit:     get("deposit"),
		Description: get("description"),
		Beds:        get("beds"),
		Baths:       get("baths"),
		SqFt:        get("sqFt"),
		Gender:      get("gender"),
		Furnishing:  get("furnishing"),
		Phone:       get("phone"),
		Amenities:   form.Value["amenities"],
	}
}

// formImages opens the uploaded image files, capped at
// domain.MaxPropertyImages. The returned closer releases every opened
// file and must be called after the service has consumed them.
func formImages(form *multipart.Form) ([]ports.ImageUpload, func(), error) {
	headers := form.File["images"]
	if len(headers) > domain.MaxPropertyImages {
		headers = headers[:domain.MaxPropertyImages]
	}

	images := make([]ports.ImageUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded image")
		}
		files = append(files, f)
		images = append(images, ports.ImageUpload{Filename: fh.Filename, Content: f})
	}

	return images, closeAll, nil
}

// existingImages decodes the JSON-encoded list of image URLs the caller
// wants to keep. A malformed or absent value yields an empty kept set, so
// the update proceeds as if nothing were kept.
func existingImages(form *multipart.Form) []string {
	vs := form.Value["existingImages"]
	if len(vs) == 0 {
		return nil
	}
	var kept []string
	if err := json.Unmarshal([]byte(vs[0]), &kept); err != nil {
		return nil
	}
	return kept
}
