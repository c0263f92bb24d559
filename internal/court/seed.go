package court

import "time"

// DefaultCourts is the catalog a fresh in-memory deployment starts with.
func DefaultCourts() []*Court {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*Court{
		{
			Name:         "Main Soccer Field",
			Description:  "Synthetic turf soccer field with LED lighting",
			Category:     CategorySoccer,
			Capacity:     22,
			PricePerHour: 25000,
			Status:       StatusAvailable,
			Amenities:    []string{"Synthetic turf", "LED lighting", "Electronic scoreboard", "Locker rooms", "Parking"},
			Rules: []string{
				"Sports shoes only",
				"No alcohol",
				"Maximum 22 players per reservation",
				"Respect reservation times",
			},
			CreatedAt: created,
		},
		{
			Name:         "Indoor Basketball Court",
			Description:  "Covered court with hardwood floor and professional backboards",
			Category:     CategoryBasketball,
			Capacity:     10,
			PricePerHour: 20000,
			Status:       StatusAvailable,
			Amenities:    []string{"Hardwood floor", "Roof", "Professional backboards", "Bleachers", "Air conditioning"},
			Rules: []string{
				"Sports shoes required",
				"No food on the court",
				"Maximum 10 players per reservation",
				"Keep the facility clean",
			},
			CreatedAt: created,
		},
		{
			Name:         "Tennis Court #1",
			Description:  "Clay tennis court with professional net",
			Category:     CategoryTennis,
			Capacity:     4,
			PricePerHour: 15000,
			Status:       StatusAvailable,
			Amenities:    []string{"Clay surface", "Professional net", "Lighting", "Side benches"},
			Rules: []string{
				"Maximum 4 players (doubles)",
				"Tennis shoes required",
				"Respect playing turns",
				"Take care of the net and surface",
			},
			CreatedAt: created,
		},
		{
			Name:         "Multi-sport Court",
			Description:  "Adaptable court for volleyball, basketball and futsal",
			Category:     CategoryMultiSport,
			Capacity:     16,
			PricePerHour: 18000,
			Status:       StatusMaintenance,
			Amenities:    []string{"Synthetic surface", "Movable goals", "Adjustable volleyball net", "Manual scoreboard"},
			Rules: []string{
				"Set up for the sport being played",
				"Report any damage",
				"Return equipment to its place",
				"Maximum 16 players",
			},
			CreatedAt: created,
		},
	}
}
