package catalog

import "hotel_adlab/internal/domain"

// Seed is the fixed hotel list the storefront starts with.
var Seed = []domain.HotelRecord{
	{ID: 1, Name: "Boutique Hotel L’Amour", Price: 202, Rating: 5, Type: domain.TypeRomantic, Location: "Paris",
		Description: "Romantic luxury stay in a historic villa."},
	{ID: 2, Name: "Château Romance & Spa", Price: 289, Rating: 5, Type: domain.TypeWellness, Location: "Paris",
		Description: "Experience unforgettable moments in our exclusive castle hotel."},
	{ID: 3, Name: "Landhotel Rosengarten", Price: 139, Rating: 3, Type: domain.TypeBudget, Location: "Berlin",
		Description: "Charming country hotel with its own rose garden and organic restaurant."},
	{ID: 4, Name: "City Boutique Hotel", Price: 149, Rating: 4, Type: domain.TypeBusiness, Location: "Berlin",
		Description: "Stylish boutique hotel in a prime location near shopping and restaurants."},
}
