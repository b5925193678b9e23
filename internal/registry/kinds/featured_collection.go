package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// FeaturedCollection highlights a single collection with a horizontal
// product scroller.
func FeaturedCollection() registry.Kind {
	return registry.Kind{
		ID:       "featured-collection",
		Name:     "Featured Collection",
		Category: "commerce",
		Schema: []registry.Property{
			{Name: "title", Label: "Title", Type: registry.PropertyText},
			{Name: "collection", Label: "Collection", Type: registry.PropertyCollection},
			{
				Name: "maxItems", Label: "Max items", Type: registry.PropertyNumber,
				Min: registry.Bound(2), Max: registry.Bound(12),
			},
			{Name: "showViewAll", Label: "Show view-all link", Type: registry.PropertyBoolean},
		},
		Defaults: map[string]any{
			"title":       "Featured",
			"collection":  "",
			"maxItems":    float64(6),
			"showViewAll": true,
		},
	}
}
