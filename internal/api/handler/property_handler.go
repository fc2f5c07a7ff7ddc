package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentease/rentease/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties. Public; the client filters the full
// set locally.
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: properties})
}

// Get handles GET /api/properties/:id. Public.
func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: property})
}

// MyProperties handles GET /api/properties/my-properties. Returns only the
// requester's listings.
func (h *PropertyHandler) MyProperties(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	properties, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: properties})
}

// Create handles POST /api/properties/add-property: multipart property
// fields plus up to five image files under "images".
func (h *PropertyHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	fields := formFields(form)
	if fields.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	images, closeImages, err := formImages(form)
	if err != nil {
		return err
	}
	defer closeImages()

	property, err := h.service.Create(c.Request().Context(), userID, fields, images)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyResponse{
		Message:  "Property added successfully",
		Property: property,
	})
}

// Update handles PUT /api/properties/:id: multipart property fields, an
// "existingImages" JSON array of URLs to keep, and up to five new image
// files. Listed scalar fields are overwritten with the submitted values,
// absent ones included.
func (h *PropertyHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	images, closeImages, err := formImages(form)
	if err != nil {
		return err
	}
	defer closeImages()

	property, err := h.service.Update(c.Request().Context(), ports.UpdatePropertyInput{
		ID:             c.Param("id"),
		UserID:         userID,
		Fields:         formFields(form),
		ExistingImages: existingImages(form),
		NewImages:      images,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyResponse{
		Message:  "Property updated successfully",
		Property: property,
	})
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}
