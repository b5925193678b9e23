package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// TextBlock is a free-form rich text section.
func TextBlock() registry.Kind {
	return registry.Kind{
		ID:       "text-block",
		Name:     "Text Block",
		Category: "content",
		Schema: []registry.Property{
			{Name: "content", Label: "Content", Type: registry.PropertyRichText},
			{
				Name: "align", Label: "Alignment", Type: registry.PropertySelect,
				Options: []string{"left", "center", "right"},
			},
			{
				Name: "fontSize", Label: "Font size", Type: registry.PropertyNumber,
				Min: registry.Bound(10), Max: registry.Bound(48),
			},
		},
		Defaults: map[string]any{
			"content":  "Tell your story",
			"align":    "left",
			"fontSize": float64(16),
		},
	}
}
