package client

import (
	"html/template"
	"io"
	"strconv"

	"github.com/rentease/rentease/internal/core/domain"
)

const (
	titleMaxLen      = 50
	maxAmenityChips  = 4
	placeholderImage = "https://via.placeholder.com/600x400"
)

// cardView is the per-listing view model fed to the card template.
type cardView struct {
	ID         string
	Title      string
	Image      string
	Type       string
	Price      string
	Verified   bool
	Location   string
	Beds       string
	Baths      string
	Furnishing string
	Amenities  []string
}

// listView is the page-level view model.
type listView struct {
	Count string
	Cards []cardView
}

var listTemplate = template.Must(template.New("properties").Parse(`<h2 id="properties-count">{{.Count}}</h2>
<div id="property-list">
{{- range .Cards}}
  <div class="property-card">
    <div class="card-img">
      <img src="{{.Image}}" alt="{{.Title}}">
      <span class="property-type">{{.Type}}</span>
      <span class="price-badge{{if .Verified}} verified{{end}}">{{if .Verified}}Verified {{end}}{{.Price}}</span>
    </div>
    <div class="card-body">
      <h3>{{.Title}}</h3>
      <p class="location">{{.Location}}</p>
      <div class="details">
        <span>{{.Beds}} Bed</span>
        <span>{{.Baths}} Bath</span>
        <span class="furnishing">{{.Furnishing}}</span>
      </div>
      <div class="amenities">{{range .Amenities}}<span>{{.}}</span>{{end}}</div>
      <div class="actions">
        <button class="btn view" data-id="{{.ID}}">View Details</button>
      </div>
    </div>
  </div>
{{- end}}
</div>
`))

// Render writes the card markup for the given listings. Card heights are a
// stylesheet concern; the markup stays uniform so no runtime equalization
// is needed.
func Render(w io.Writer, properties []*domain.Property) error {
	view := listView{Count: CountHeading(len(properties))}
	for _, p := range properties {
		view.Cards = append(view.Cards, newCardView(p))
	}
	return listTemplate.Execute(w, view)
}

// CountHeading formats the listing count line, with an explicit empty state.
func CountHeading(n int) string {
	if n == 0 {
		return "No Properties Found"
	}
	return strconv.Itoa(n) + " Properties Found"
}

func newCardView(p *domain.Property) cardView {
	v := cardView{
		ID:         p.ID,
		Title:      TruncateTitle(p.Title),
		Image:      placeholderImage,
		Type:       orDefault(p.Type, "Property"),
		Price:      p.Price,
		Verified:   p.Verified,
		Location:   orDefault(p.Location, "Location not specified"),
		Beds:       orDefault(p.Beds, "-"),
		Baths:      orDefault(p.Baths, "-"),
		Furnishing: orDefault(p.Furnishing, "N/A"),
	}
	if len(p.Images) > 0 {
		v.Image = p.Images[0]
	}
	if len(p.Amenities) == 0 {
		v.Amenities = []string{"No amenities"}
	} else {
		v.Amenities = p.Amenities
		if len(v.Amenities) > maxAmenityChips {
			v.Amenities = v.Amenities[:maxAmenityChips]
		}
	}
	return v
}

// TruncateTitle caps a listing title for card display.
func TruncateTitle(title string) string {
	if len(title) > titleMaxLen {
		return title[:titleMaxLen] + "..."
	}
	return title
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
