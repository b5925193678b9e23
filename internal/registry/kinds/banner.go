package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// Banner is a full-width hero image with overlaid title text.
func Banner() registry.Kind {
	return registry.Kind{
		ID:       "banner",
		Name:     "Banner",
		Category: "content",
		Schema: []registry.Property{
			{Name: "title", Label: "Title", Type: registry.PropertyText},
			{Name: "subtitle", Label: "Subtitle", Type: registry.PropertyText},
			{Name: "image", Label: "Background image", Type: registry.PropertyImage},
			{Name: "height", Label: "Height", Type: registry.PropertyText},
			{Name: "overlayColor", Label: "Overlay color", Type: registry.PropertyColor},
			{Name: "showButton", Label: "Show button", Type: registry.PropertyBoolean},
			{
				Name: "buttonLabel", Label: "Button label", Type: registry.PropertyText,
				VisibleWhen: &registry.Condition{DependsOn: "showButton", Equals: true},
			},
			{
				Name: "buttonLink", Label: "Button link", Type: registry.PropertyText,
				VisibleWhen: &registry.Condition{DependsOn: "showButton", Equals: true},
			},
		},
		Defaults: map[string]any{
			"title":        "Welcome to our store",
			"subtitle":     "",
			"image":        "",
			"height":       "200px",
			"overlayColor": "#00000055",
			"showButton":   false,
			"buttonLabel":  "Shop now",
			"buttonLink":   "/",
		},
	}
}
