package catalog

import "github.com/sibabeauty/storefront/internal/model"

// SeedProducts is the launch catalog.
var SeedProducts = []model.Product{
	{
		ID:          "1",
		Name:        "Radiance Moisturizer",
		Description: "Luxurious daily moisturizer enriched with hyaluronic acid and vitamin E for deep hydration and a radiant glow.",
		PriceCents:  45000,
		Image:       "/assets/product-1.jpg",
		Category:    "Moisturizers",
		Size:        "50ml",
		Badge:       "Bestseller",
		Ingredients: []string{"Hyaluronic Acid", "Vitamin E", "Aloe Vera", "Shea Butter"},
		Benefits: []string{
			"Deep hydration for up to 24 hours",
			"Reduces fine lines and wrinkles",
			"Improves skin elasticity",
			"Non-comedogenic formula",
		},
	},
	{
		ID:          "2",
		Name:        "Rose Gold Serum",
		Description: "Premium anti-aging serum with rose extracts and gold particles to brighten and rejuvenate your complexion.",
		PriceCents:  65000,
		Image:       "/assets/product-2.jpg",
		Category:    "Serums",
		Size:        "30ml",
		Badge:       "Premium",
		Ingredients: []string{"Rose Extract", "24K Gold", "Peptides", "Retinol"},
		Benefits: []string{
			"Reduces dark spots and hyperpigmentation",
			"Firms and tightens skin",
			"Boosts collagen production",
			"Illuminates and brightens complexion",
		},
	},
	{
		ID:          "3",
		Name:        "Natural Face Oil",
		Description: "Organic blend of nourishing oils including jojoba, argan, and rosehip to restore skin's natural balance.",
		PriceCents:  55000,
		Image:       "/assets/product-3.jpg",
		Category:    "Face Oils",
		Size:        "30ml",
		Badge:       "Organic",
		Ingredients: []string{"Jojoba Oil", "Argan Oil", "Rosehip Oil", "Vitamin C"},
		Benefits: []string{
			"Balances natural oil production",
			"Rich in antioxidants",
			"Suitable for all skin types",
			"Quick absorption, non-greasy",
		},
	},
	{
		ID:          "4",
		Name:        "Vitamin C Brightening Serum",
		Description: "Powerful brightening serum with stabilized Vitamin C to even skin tone and boost radiance.",
		PriceCents:  58000,
		Image:       "/assets/product-4.jpg",
		Category:    "Serums",
		Size:        "30ml",
		Badge:       "New",
		Ingredients: []string{"Vitamin C", "Ferulic Acid", "Vitamin E", "Citrus Extract"},
		Benefits: []string{
			"Brightens and evens skin tone",
			"Protects against environmental damage",
			"Boosts collagen synthesis",
			"Fades age spots and sun damage",
		},
	},
	{
		ID:          "5",
		Name:        "Hydrating Gel Moisturizer",
		Description: "Lightweight gel formula with hyaluronic acid for intense hydration without feeling heavy.",
		PriceCents:  42000,
		Image:       "/assets/product-5.jpg",
		Category:    "Moisturizers",
		Size:        "50ml",
		Ingredients: []string{"Hyaluronic Acid", "Aloe Vera", "Cucumber Extract", "Green Tea"},
		Benefits: []string{
			"Oil-free hydration",
			"Soothes and calms irritated skin",
			"Perfect for oily and combination skin",
			"Minimizes pore appearance",
		},
	},
	{
		ID:          "6",
		Name:        "Anti-Aging Night Cream",
		Description: "Rich night cream with retinol and peptides to repair and regenerate skin while you sleep.",
		PriceCents:  72000,
		Image:       "/assets/product-6.jpg",
		Category:    "Night Care",
		Size:        "50ml",
		Badge:       "Premium",
		Ingredients: []string{"Retinol", "Peptides", "Ceramides", "Niacinamide"},
		Benefits: []string{
			"Reduces wrinkles and fine lines",
			"Repairs skin overnight",
			"Strengthens skin barrier",
			"Improves skin texture and tone",
		},
	},
}

// Seed loads the launch catalog into the store.
func (s *Store) Seed() {
	for _, p := range SeedProducts {
		s.Create(p)
	}
}
