package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// ImageSlider is a swipeable carousel of images.
func ImageSlider() registry.Kind {
	return registry.Kind{
		ID:       "image-slider",
		Name:     "Image Slider",
		Category: "content",
		Schema: []registry.Property{
			{Name: "images", Label: "Images (comma separated)", Type: registry.PropertyText},
			{
				Name: "autoPlay", Label: "Auto play", Type: registry.PropertyBoolean,
			},
			{
				Name: "intervalSeconds", Label: "Slide interval (s)", Type: registry.PropertyNumber,
				Min: registry.Bound(1), Max: registry.Bound(30),
				VisibleWhen: &registry.Condition{DependsOn: "autoPlay", Equals: true},
			},
			{
				Name: "aspectRatio", Label: "Aspect ratio", Type: registry.PropertySelect,
				Options: []string{"16:9", "4:3", "1:1"},
			},
		},
		Defaults: map[string]any{
			"images":          "",
			"autoPlay":        true,
			"intervalSeconds": float64(5),
			"aspectRatio":     "16:9",
		},
	}
}
