package domain

// Summary is a short encyclopedia extract for a topic.
type Summary struct {
	Title   string
	Extract string
	URL     string
	// Ambiguous is set when the topic resolved to a disambiguation page.
	Ambiguous bool
}

// WeatherReport is the current conditions for one place.
type WeatherReport struct {
	City        string
	Description string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	Units       string
}

// UnitSymbol returns the temperature suffix for the report's units.
func (w WeatherReport) UnitSymbol() string {
	if w.Units == "imperial" {
		return "°F"
	}
	return "°C"
}
