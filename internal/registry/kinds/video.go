package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// Video embeds a muted, looping product video.
func Video() registry.Kind {
	return registry.Kind{
		ID:       "video",
		Name:     "Video",
		Category: "content",
		Schema: []registry.Property{
			{Name: "url", Label: "Video URL", Type: registry.PropertyText},
			{Name: "autoPlay", Label: "Auto play", Type: registry.PropertyBoolean},
			{Name: "loop", Label: "Loop", Type: registry.PropertyBoolean},
		},
		Defaults: map[string]any{
			"url":      "",
			"autoPlay": true,
			"loop":     true,
		},
	}
}
