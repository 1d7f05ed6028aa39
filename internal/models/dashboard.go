package models

// Forecast is one day of the weather outlook.
type Forecast struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}

// Weather is the current conditions plus a short forecast.
type Weather struct {
	Location    string     `json:"location"`
	Temperature int        `json:"temperature"`
	Humidity    int        `json:"humidity"`
	WindSpeed   int        `json:"wind_speed"`
	Condition   string     `json:"condition"`
	Forecast    []Forecast `json:"forecast"`
}

// MarketPrice is a mandi price for a crop.
type MarketPrice struct {
	Crop   string  `json:"crop"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Unit   string  `json:"unit"`
	Trend  string  `json:"trend"`
}

// FarmingTip is a seasonal advisory.
type FarmingTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Tone        string `json:"tone"`
}

// Dashboard groups everything shown on the farmer dashboard.
type Dashboard struct {
	Weather      Weather       `json:"weather"`
	MarketPrices []MarketPrice `json:"market_prices"`
	Tips         []FarmingTip  `json:"tips"`
}
