package catalog

import "github.com/angelmondragon/storefront/pkg/money"

// DefaultCategories is the storefront's published category list, in display order.
func DefaultCategories() []Category {
	return []Category{
		{ID: "burgers", Name: "Burgers", Icon: "🍔"},
		{ID: "sides", Name: "Sides", Icon: "🍟"},
		{ID: "drinks", Name: "Drinks", Icon: "🥤"},
		{ID: "desserts", Name: "Desserts", Icon: "🍰"},
	}
}

// DefaultItems is the storefront's published menu.
func DefaultItems() []Item {
	return []Item{
		{
			ID:          "classic-burger",
			Name:        "Classic Beef Burger",
			Description: "Juicy beef patty with lettuce, tomato, onion, and our signature sauce",
			BasePrice:   money.MustParse("12.99"),
			Image:       "/classic-beef-burger.png",
			Category:    "burgers",
			Popular:     true,
			Customizations: &Customizations{
				Sizes:  []Option{opt("Regular", "0"), opt("Large", "2.50")},
				Addons: []Option{opt("Extra Cheese", "1.50"), opt("Bacon", "2.00"), opt("Avocado", "1.75")},
			},
		},
		{
			ID:          "chicken-deluxe",
			Name:        "Chicken Deluxe",
			Description: "Crispy chicken breast with mayo, lettuce, and pickles on a toasted bun",
			BasePrice:   money.MustParse("11.99"),
			Image:       "/crispy-chicken-deluxe.png",
			Category:    "burgers",
			Customizations: &Customizations{
				Sizes:  []Option{opt("Regular", "0"), opt("Large", "2.50")},
				Addons: []Option{opt("Extra Cheese", "1.50"), opt("Spicy Sauce", "0.50")},
			},
		},
		{
			ID:          "veggie-burger",
			Name:        "Garden Veggie Burger",
			Description: "Plant-based patty with fresh vegetables and herb aioli",
			BasePrice:   money.MustParse("10.99"),
			Image:       "/veggie-burger-with-fresh-ingredients.png",
			Category:    "burgers",
			Customizations: &Customizations{
				Addons: []Option{opt("Vegan Cheese", "1.50"), opt("Grilled Mushrooms", "1.25")},
			},
		},
		{
			ID:          "golden-fries",
			Name:        "Golden Fries",
			Description: "Crispy golden fries seasoned with sea salt",
			BasePrice:   money.MustParse("4.99"),
			Image:       "/golden-crispy-fries.png",
			Category:    "sides",
			Popular:     true,
			Customizations: &Customizations{
				Sizes: []Option{opt("Small", "0"), opt("Medium", "1.50"), opt("Large", "2.50")},
			},
		},
		{
			ID:          "onion-rings",
			Name:        "Crispy Onion Rings",
			Description: "Beer-battered onion rings served with ranch dipping sauce",
			BasePrice:   money.MustParse("5.99"),
			Image:       "/crispy-onion-rings.png",
			Category:    "sides",
		},
		{
			ID:          "chicken-nuggets",
			Name:        "Chicken Nuggets",
			Description: "Tender chicken nuggets with your choice of dipping sauce",
			BasePrice:   money.MustParse("7.99"),
			Image:       "/golden-chicken-nuggets.png",
			Category:    "sides",
			Customizations: &Customizations{
				Sizes: []Option{opt("6 pieces", "0"), opt("10 pieces", "2.50"), opt("20 pieces", "5.00")},
			},
		},
		{
			ID:          "cola",
			Name:        "Classic Cola",
			Description: "Refreshing cola with ice",
			BasePrice:   money.MustParse("2.99"),
			Image:       "/cola-with-ice.png",
			Category:    "drinks",
			Customizations: &Customizations{
				Sizes: []Option{opt("Small", "0"), opt("Medium", "0.50"), opt("Large", "1.00")},
			},
		},
		{
			ID:          "milkshake",
			Name:        "Vanilla Milkshake",
			Description: "Creamy vanilla milkshake topped with whipped cream",
			BasePrice:   money.MustParse("4.99"),
			Image:       "/vanilla-milkshake.png",
			Category:    "drinks",
			Popular:     true,
		},
		{
			ID:          "orange-juice",
			Name:        "Fresh Orange Juice",
			Description: "Freshly squeezed orange juice",
			BasePrice:   money.MustParse("3.99"),
			Image:       "/fresh-orange-juice.png",
			Category:    "drinks",
		},
		{
			ID:          "chocolate-cake",
			Name:        "Chocolate Fudge Cake",
			Description: "Rich chocolate cake with fudge frosting",
			BasePrice:   money.MustParse("5.99"),
			Image:       "/chocolate-fudge-cake-slice.png",
			Category:    "desserts",
		},
		{
			ID:          "ice-cream",
			Name:        "Vanilla Ice Cream",
			Description: "Creamy vanilla ice cream with chocolate chips",
			BasePrice:   money.MustParse("3.99"),
			Image:       "/vanilla-chocolate-chip-ice-cream.png",
			Category:    "desserts",
			Customizations: &Customizations{
				Addons: []Option{opt("Extra Chocolate Chips", "0.75"), opt("Caramel Sauce", "0.50")},
			},
		},
	}
}

func opt(name, price string) Option {
	return Option{Name: name, Price: money.MustParse(price)}
}
