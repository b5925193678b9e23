package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// AnnouncementBar is a slim scrolling text strip, usually pinned at the top.
func AnnouncementBar() registry.Kind {
	return registry.Kind{
		ID:       "announcement-bar",
		Name:     "Announcement Bar",
		Category: "content",
		Schema: []registry.Property{
			{Name: "text", Label: "Text", Type: registry.PropertyText},
			{Name: "background", Label: "Background color", Type: registry.PropertyColor},
			{Name: "textColor", Label: "Text color", Type: registry.PropertyColor},
			{Name: "scrolling", Label: "Scrolling", Type: registry.PropertyBoolean},
		},
		Defaults: map[string]any{
			"text":       "Free shipping on orders over $50",
			"background": "#111111",
			"textColor":  "#FFFFFF",
			"scrolling":  true,
		},
	}
}
