package main

import (
	"github.com/taldoflemis/veggie-delight/preorder"
)

// MenuItems is the static orderable catalog. Prices are in cents.
func MenuItems() []preorder.MenuItem {
	return []preorder.MenuItem{
		{
			ID:          1,
			Name:        "Buddha Bowl",
			Price:       1499,
			Description: "Fresh seasonal vegetables, avocado, quinoa, and tofu with tahini dressing",
			Image:       "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Gluten-Free", "Local Produce"},
			Category:    "mains",
		},
		{
			ID:          2,
			Name:        "Mushroom Risotto",
			Price:       1699,
			Description: "Creamy arborio rice with wild mushrooms, white wine, and parmesan",
			Image:       "https://images.unsplash.com/photo-1476124369491-e7addf5db371?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegetarian", "Gluten-Free"},
			Category:    "mains",
		},
		{
			ID:          3,
			Name:        "Chickpea Curry",
			Price:       1399,
			Description: "Hearty chickpeas in a spiced tomato and coconut curry sauce",
			Image:       "https://images.unsplash.com/photo-1548943487-a2e4e43b4853?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Gluten-Free", "Seasonal"},
			Category:    "mains",
		},
		{
			ID:          4,
			Name:        "Eggplant Parmesan",
			Price:       1599,
			Description: "Layers of baked eggplant with house marinara and melted plant-based cheese",
			Image:       "https://images.unsplash.com/photo-1625944525533-473f1a3d54e7?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegetarian", "Locally Sourced"},
			Category:    "mains",
		},
		{
			ID:          5,
			Name:        "Avocado Toast",
			Price:       1099,
			Description: "Whole grain sourdough with smashed avocado, microgreens, and cherry tomatoes",
			Image:       "https://images.unsplash.com/photo-1525351484163-7529414344d8?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Local Bread"},
			Category:    "starters",
		},
		{
			ID:          6,
			Name:        "Berry Parfait",
			Price:       999,
			Description: "Layered coconut yogurt, seasonal berries, and homemade granola",
			Image:       "https://images.unsplash.com/photo-1502747220144-846486e80891?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Gluten-Free", "Seasonal"},
			Category:    "desserts",
		},
		{
			ID:          7,
			Name:        "Cauliflower Wings",
			Price:       1199,
			Description: "Crispy cauliflower tossed in buffalo sauce with vegan ranch dipping sauce",
			Image:       "https://images.unsplash.com/photo-1562967914-608f82629710?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Gluten-Free"},
			Category:    "starters",
		},
		{
			ID:          8,
			Name:        "Sweet Potato Black Bean Burger",
			Price:       1499,
			Description: "Hearty patty with avocado, sprouts, and chipotle aioli on a whole grain bun",
			Image:       "https://images.unsplash.com/photo-1520072959219-c595dc870360?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Nut-Free"},
			Category:    "mains",
		},
		{
			ID:          9,
			Name:        "Lemon Blueberry Cheesecake",
			Price:       899,
			Description: "Cashew-based cheesecake with lemon and local blueberry topping",
			Image:       "https://images.unsplash.com/photo-1533134242443-d4fd215305ad?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Raw", "Gluten-Free"},
			Category:    "desserts",
		},
		{
			ID:          10,
			Name:        "Cucumber Mint Refresher",
			Price:       599,
			Description: "Sparkling water with fresh cucumber, mint, and lime",
			Image:       "https://images.unsplash.com/photo-1544145945-f90425340c7e?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Gluten-Free", "Seasonal"},
			Category:    "drinks",
		},
		{
			ID:          11,
			Name:        "Golden Milk Latte",
			Price:       499,
			Description: "Turmeric and ginger infused plant milk with a touch of maple syrup",
			Image:       "https://images.unsplash.com/photo-1578314675249-a6910f80239c?auto=format&fit=crop&q=80&w=800",
			Tags:        []string{"Vegan", "Anti-inflammatory"},
			Category:    "drinks",
		},
		{
			ID:          12,
			Name:        "Roasted Vegetable Flatbread",
			Price:       1399,
			Description: "House-made flatbread with seasonal vegetables, pesto, and cashew cheese",
			Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?auto=format&fit=crop&w=500&q=80",
			Tags:        []string{"Vegan", "Farm Fresh"},
			Category:    "starters",
		},
	}
}
