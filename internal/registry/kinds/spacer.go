package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// Spacer is vertical whitespace between sections.
func Spacer() registry.Kind {
	return registry.Kind{
		ID:       "spacer",
		Name:     "Spacer",
		Category: "layout",
		Schema: []registry.Property{
			{
				Name: "height", Label: "Height (px)", Type: registry.PropertyNumber,
				Min: registry.Bound(4), Max: registry.Bound(200),
			},
		},
		Defaults: map[string]any{
			"height": float64(24),
		},
	}
}
