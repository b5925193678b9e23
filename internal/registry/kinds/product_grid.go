package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// ProductGrid shows catalog products in a fixed-column grid.
func ProductGrid() registry.Kind {
	return registry.Kind{
		ID:       "product-grid",
		Name:     "Product Grid",
		Category: "commerce",
		Schema: []registry.Property{
			{Name: "title", Label: "Title", Type: registry.PropertyText},
			{
				Name: "columns", Label: "Columns", Type: registry.PropertyNumber,
				Min: registry.Bound(1), Max: registry.Bound(4),
			},
			{
				Name: "maxItems", Label: "Max items", Type: registry.PropertyNumber,
				Min: registry.Bound(1), Max: registry.Bound(24),
			},
			{Name: "showPrice", Label: "Show price", Type: registry.PropertyBoolean},
			{Name: "showVendor", Label: "Show vendor", Type: registry.PropertyBoolean},
		},
		Defaults: map[string]any{
			"title":      "Our products",
			"columns":    float64(2),
			"maxItems":   float64(8),
			"showPrice":  true,
			"showVendor": false,
		},
	}
}
