package services

import (
	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
)

// Price trends.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// DashboardService serves the farmer dashboard. All figures are constants.
type DashboardService struct{}

// NewDashboardService creates a new DashboardService.
func NewDashboardService() *DashboardService { return &DashboardService{} }

// Dashboard returns the weather, mandi prices and farming tips.
func (s *DashboardService) Dashboard() models.Dashboard {
	return models.Dashboard{
		Weather:      weather(),
		MarketPrices: marketPrices(),
		Tips:         farmingTips(),
	}
}

func weather() models.Weather {
	return models.Weather{
		Location:    "Pune, Maharashtra",
		Temperature: 28,
		Humidity:    65,
		WindSpeed:   12,
		Condition:   "Partly Cloudy",
		Forecast: []models.Forecast{
			{Day: "Today", High: 32, Low: 22, Condition: "Sunny"},
			{Day: "Tomorrow", High: 30, Low: 20, Condition: "Cloudy"},
			{Day: "Day 3", High: 29, Low: 19, Condition: "Rainy"},
			{Day: "Day 4", High: 31, Low: 21, Condition: "Sunny"},
			{Day: "Day 5", High: 33, Low: 23, Condition: "Hot"},
		},
	}
}

func marketPrices() []models.MarketPrice {
	prices := []models.MarketPrice{
		{Crop: "Wheat", Price: 2150, Change: 50, Unit: "quintal"},
		{Crop: "Rice", Price: 3200, Change: -25, Unit: "quintal"},
		{Crop: "Onion", Price: 1800, Change: 120, Unit: "quintal"},
		{Crop: "Tomato", Price: 2500, Change: -80, Unit: "quintal"},
		{Crop: "Potato", Price: 1200, Change: 30, Unit: "quintal"},
		{Crop: "Sugarcane", Price: 3500, Change: 75, Unit: "ton"},
	}
	for i := range prices {
		prices[i].Trend = Trend(prices[i].Change)
	}
	return prices
}

func farmingTips() []models.FarmingTip {
	tips := []models.FarmingTip{
		{Title: "Monsoon Preparation", Description: "Ensure proper drainage in fields before monsoon arrives", Priority: "high"},
		{Title: "Pest Control", Description: "Regular monitoring needed for wheat crops this season", Priority: "medium"},
		{Title: "Soil Testing", Description: "Test soil pH and nutrient levels for better yield", Priority: "low"},
	}
	for i := range tips {
		tips[i].Tone = string(catalog.PriorityTone(tips[i].Priority))
	}
	return tips
}

// Trend classifies a price change.
func Trend(change float64) string {
	switch {
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}
