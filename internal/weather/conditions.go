package weather

// Conditions is the normalized current-weather record handed to the model
type Conditions struct {
	Location        string  `json:"location"`
	Country         string  `json:"country,omitempty"`
	Description     string  `json:"description"`
	Temperature     float64 `json:"temperature"`
	FeelsLike       float64 `json:"feels_like"`
	TempMin         float64 `json:"temp_min"`
	TempMax         float64 `json:"temp_max"`
	Humidity        int     `json:"humidity"`
	Pressure        int     `json:"pressure"`
	WindSpeed       float64 `json:"wind_speed"`
	Units           string  `json:"units"`
	TemperatureUnit string  `json:"temperature_unit"`
	WindSpeedUnit   string  `json:"wind_speed_unit"`
}

// apiResponse mirrors the subset of the OpenWeatherMap payload we use
type apiResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (r apiResponse) normalize(units string) Conditions {
	c := Conditions{
		Location:    r.Name,
		Country:     r.Sys.Country,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		TempMin:     r.Main.TempMin,
		TempMax:     r.Main.TempMax,
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		WindSpeed:   r.Wind.Speed,
		Units:       units,
	}

	if len(r.Weather) > 0 {
		c.Description = r.Weather[0].Description
		if c.Description == "" {
			c.Description = r.Weather[0].Main
		}
	}

	switch units {
	case "imperial":
		c.TemperatureUnit, c.WindSpeedUnit = "°F", "mph"
	case "standard":
		c.TemperatureUnit, c.WindSpeedUnit = "K", "m/s"
	default:
		c.TemperatureUnit, c.WindSpeedUnit = "°C", "m/s"
	}

	return c
}
