package repositories

import (
	"errors"
	"fmt"

	"farmconnect/internal/models"
)

// SeedProducts returns the constant marketplace listings loaded at start-up.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID: "1", Title: "Organic Wheat - Premium Quality",
			Description: "Fresh harvest, premium quality wheat from my farm. No chemicals used.",
			Price:       2500, Type: models.ProductTypeSell, Category: "grains",
			Location: "Pune, Maharashtra", Seller: "राजेश पाटील", Phone: "+91 98765 43210",
			Rating: 4.8, Quantity: "100 quintals", Quality: "A Grade",
		},
		{
			ID: "2", Title: "Tractor - John Deere 5042D",
			Description: "Well-maintained tractor for sale. Only 500 hours used.",
			Price:       650000, Type: models.ProductTypeSell, Category: "machinery",
			Location: "Nashik, Maharashtra", Seller: "सुरेश शर्मा", Phone: "+91 87654 32109",
			Rating: 4.5, Quantity: "1 unit", Quality: "Excellent",
		},
		{
			ID: "3", Title: "Rice Seeds - High Yield Variety",
			Description: "Looking to buy high-quality rice seeds for next season.",
			Price:       80, Type: models.ProductTypeBuy, Category: "seeds",
			Location: "Solapur, Maharashtra", Seller: "विकास जाधव", Phone: "+91 76543 21098",
			Rating: 4.6, Quantity: "50 kg", Quality: "Premium",
		},
		{
			ID: "4", Title: "Onions for Wheat Exchange",
			Description: "Have surplus onions, willing to exchange for wheat or other grains.",
			Price:       0, Type: models.ProductTypeBarter, Category: "vegetables",
			Location: "Kolhapur, Maharashtra", Seller: "अनिल देसाई", Phone: "+91 65432 10987",
			Rating: 4.7, Quantity: "20 quintals", Quality: "Premium",
		},
		{
			ID: "5", Title: "Fertilizer - NPK Complex",
			Description: "Bulk purchase needed for NPK fertilizer. Looking for best rates.",
			Price:       1200, Type: models.ProductTypeBuy, Category: "fertilizer",
			Location: "Ahmednagar, Maharashtra", Seller: "मनोज कुलकर्णी", Phone: "+91 54321 09876",
			Rating: 4.4, Quantity: "100 bags", Quality: "Standard",
		},
		{
			ID: "6", Title: "Fresh Tomatoes - Direct from Farm",
			Description: "Fresh red tomatoes harvested today. Perfect for markets and wholesale.",
			Price:       15, Type: models.ProductTypeSell, Category: "vegetables",
			Location: "Satara, Maharashtra", Seller: "गीता भोसले", Phone: "+91 43210 98765",
			Rating: 4.9, Quantity: "50 crates", Quality: "A Grade",
		},
	}
}

// SeedMachines returns the constant rental machines loaded at start-up.
func SeedMachines() []models.Machine {
	return []models.Machine{
		{
			ID: "1", Name: "John Deere 5042D Tractor", Type: "tractor",
			Description: "Powerful 42 HP tractor perfect for plowing, cultivation, and harvesting. Well-maintained and fuel-efficient.",
			DailyRate:   1200, WeeklyRate: 7000,
			Location: "Pune, Maharashtra", Owner: "राजेश पाटील", Phone: "+91 98765 43210",
			Rating: 4.8, TotalRentals: 156, Availability: models.AvailabilityAvailable,
			Features: []string{"42 HP Engine", "Power Steering", "PTO", "Hydraulic Lift"},
		},
		{
			ID: "2", Name: "Mahindra ARJUN 605 DI", Type: "tractor",
			Description: "Robust 60 HP tractor with advanced features. Ideal for heavy farming operations.",
			DailyRate:   1500, WeeklyRate: 9000,
			Location: "Nashik, Maharashtra", Owner: "सुरेश शर्मा", Phone: "+91 87654 32109",
			Rating: 4.6, TotalRentals: 89, Availability: models.AvailabilityAvailable,
			Features: []string{"60 HP Engine", "Oil Immersed Brakes", "2000 kg Lifting", "Comfortable Cabin"},
		},
		{
			ID: "3", Name: "Mini Combine Harvester", Type: "harvester",
			Description: "Compact harvester perfect for small to medium farms. Efficient grain collection system.",
			DailyRate:   2500, WeeklyRate: 15000,
			Location: "Kolhapur, Maharashtra", Owner: "विकास जाधव", Phone: "+91 76543 21098",
			Rating: 4.7, TotalRentals: 34, Availability: models.AvailabilityBusy,
			Features: []string{"3.5 ft Cutting Width", "Grain Tank", "Easy Operation", "Low Maintenance"},
		},
		{
			ID: "4", Name: "Rotary Tiller", Type: "tiller",
			Description: "Heavy-duty rotary tiller for soil preparation. Suitable for all soil types.",
			DailyRate:   800, WeeklyRate: 4500,
			Location: "Solapur, Maharashtra", Owner: "अनिल देसाई", Phone: "+91 65432 10987",
			Rating: 4.5, TotalRentals: 78, Availability: models.AvailabilityAvailable,
			Features: []string{"6 ft Working Width", "32 Blades", "Heavy Frame", "Adjustable Depth"},
		},
		{
			ID: "5", Name: "Water Pump Set", Type: "pump",
			Description: "High-efficiency water pump for irrigation. Diesel engine with low fuel consumption.",
			DailyRate:   400, WeeklyRate: 2200,
			Location: "Ahmednagar, Maharashtra", Owner: "मनोज कुलकर्णी", Phone: "+91 54321 09876",
			Rating: 4.4, TotalRentals: 145, Availability: models.AvailabilityAvailable,
			Features: []string{"5 HP Diesel Engine", "3 inch Outlet", "High Discharge", "Portable"},
		},
		{
			ID: "6", Name: "Seed Drill Machine", Type: "planter",
			Description: "Precision seed drill for uniform sowing. Adjustable row spacing and seed rate.",
			DailyRate:   600, WeeklyRate: 3500,
			Location: "Satara, Maharashtra", Owner: "गीता भोसले", Phone: "+91 43210 98765",
			Rating: 4.6, TotalRentals: 67, Availability: models.AvailabilityAvailable,
			Features: []string{"9 Row Planting", "Fertilizer Box", "Depth Control", "Marker Arms"},
		},
	}
}

// Seed loads the constant catalogs into the store. Listings that already exist
// are left alone, so seeding a persistent database twice is harmless.
func Seed(s *Store) error {
	products := SeedProducts()
	for i := range products {
		if err := s.Products.Create(&products[i]); err != nil && !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("seed product %s: %w", products[i].ID, err)
		}
	}
	machines := SeedMachines()
	for i := range machines {
		if err := s.Machines.Create(&machines[i]); err != nil && !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("seed machine %s: %w", machines[i].ID, err)
		}
	}
	return nil
}
