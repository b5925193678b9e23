package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// ButtonRow is a horizontal row of up to two call-to-action buttons.
func ButtonRow() registry.Kind {
	return registry.Kind{
		ID:       "button-row",
		Name:     "Button Row",
		Category: "content",
		Schema: []registry.Property{
			{Name: "primaryLabel", Label: "Primary label", Type: registry.PropertyText},
			{Name: "primaryLink", Label: "Primary link", Type: registry.PropertyText},
			{Name: "showSecondary", Label: "Show secondary", Type: registry.PropertyBoolean},
			{
				Name: "secondaryLabel", Label: "Secondary label", Type: registry.PropertyText,
				VisibleWhen: &registry.Condition{DependsOn: "showSecondary", Equals: true},
			},
			{
				Name: "secondaryLink", Label: "Secondary link", Type: registry.PropertyText,
				VisibleWhen: &registry.Condition{DependsOn: "showSecondary", Equals: true},
			},
			{Name: "accentColor", Label: "Accent color", Type: registry.PropertyColor},
		},
		Defaults: map[string]any{
			"primaryLabel":   "Shop now",
			"primaryLink":    "/collections/all",
			"showSecondary":  false,
			"secondaryLabel": "Learn more",
			"secondaryLink":  "/pages/about",
			"accentColor":    "#2563EB",
		},
	}
}
