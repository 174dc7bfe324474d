package domain

type SensorResponse struct {
	Results []SensorRecord `json:"results"`
}

type SensorRecord struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
	Stats Stats  `json:"stats"`
}

// Stats holds raw PM2.5 readings (ug/m3) averaged over different windows.
type Stats struct {
	Current    float64 `json:"v"`
	TenMinutes float64 `json:"v1"`
	HalfHour   float64 `json:"v2"`
	OneHour    float64 `json:"v3"`
	SixHours   float64 `json:"v4"`
	OneDay     float64 `json:"v5"`
	OneWeek    float64 `json:"v6"`
}

type SensorAQI struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
	AQI   Stats  `json:"aqi"`
}
