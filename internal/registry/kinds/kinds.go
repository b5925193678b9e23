// Package kinds holds the compiled-in component palette, one file per
// kind. Order here is palette order in the builder.
package kinds

import "github.com/appcanvas-dev/appcanvas/internal/registry"

// All returns every kind in the palette, in display order.
func All() []registry.Kind {
	return []registry.Kind{
		AnnouncementBar(),
		Banner(),
		ImageSlider(),
		TextBlock(),
		ButtonRow(),
		ProductGrid(),
		FeaturedCollection(),
		Countdown(),
		Video(),
		Spacer(),
	}
}

// Default returns a registry populated with the full palette.
func Default() *registry.Registry {
	return registry.MustNew(All()...)
}
