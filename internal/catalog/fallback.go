package catalog

// FallbackItems returns the deterministic placeholder catalog served when
// neither the cache nor the storefront can supply items. The payload must
// never be empty, so previews always have something to render.
func FallbackItems() []Item {
	compareAt := func(v float64) *float64 { return &v }
	return []Item{
		{
			ID:       "fallback-1",
			Title:    "Classic Tee",
			ImageURL: "https://placehold.co/400x400?text=Classic+Tee",
			Price:    19.99,
			Vendor:   "Demo Goods",
		},
		{
			ID:             "fallback-2",
			Title:          "Canvas Tote",
			ImageURL:       "https://placehold.co/400x400?text=Canvas+Tote",
			Price:          24.50,
			CompareAtPrice: compareAt(32.00),
			Vendor:         "Demo Goods",
		},
		{
			ID:       "fallback-3",
			Title:    "Enamel Mug",
			ImageURL: "https://placehold.co/400x400?text=Enamel+Mug",
			Price:    14.00,
			Vendor:   "Demo Goods",
		},
		{
			ID:             "fallback-4",
			Title:          "Wool Beanie",
			ImageURL:       "https://placehold.co/400x400?text=Wool+Beanie",
			Price:          18.75,
			CompareAtPrice: compareAt(25.00),
			Vendor:         "Demo Goods",
		},
		{
			ID:       "fallback-5",
			Title:    "Sticker Pack",
			ImageURL: "https://placehold.co/400x400?text=Sticker+Pack",
			Price:    6.99,
			Vendor:   "Demo Goods",
		},
		{
			ID:       "fallback-6",
			Title:    "Water Bottle",
			ImageURL: "https://placehold.co/400x400?text=Water+Bottle",
			Price:    22.00,
			Vendor:   "Demo Goods",
		},
	}
}
