package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// Countdown counts down to a sale deadline.
func Countdown() registry.Kind {
	return registry.Kind{
		ID:       "countdown",
		Name:     "Countdown",
		Category: "engagement",
		Schema: []registry.Property{
			{Name: "title", Label: "Title", Type: registry.PropertyText},
			{Name: "endsAt", Label: "Ends at", Type: registry.PropertyDateTime},
			{Name: "background", Label: "Background color", Type: registry.PropertyColor},
			{Name: "hideWhenDone", Label: "Hide when finished", Type: registry.PropertyBoolean},
		},
		Defaults: map[string]any{
			"title":        "Sale ends in",
			"endsAt":       "",
			"background":   "#B91C1C",
			"hideWhenDone": true,
		},
	}
}
