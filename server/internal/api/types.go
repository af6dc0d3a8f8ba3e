package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	RecordCount  int    `json:"record_count"`
	SiteCount    int    `json:"site_count"`
	SuccessCount int    `json:"success_count"`
	Source       string `json:"source"`
	LoadedAt     string `json:"loaded_at"`  // RFC3339, when the CSV was parsed
	UpdatedAt    string `json:"updated_at"` // RFC3339, when the store swapped it in
	Version      uint64 `json:"version"`
}

// LayoutResponse is the payload for GET /api/v1/layout and the "layout"
// WebSocket event. It describes every control on the page.
type LayoutResponse struct {
	Title    string           `json:"title"`
	Dropdown DropdownResponse `json:"dropdown"`
	Slider   SliderResponse   `json:"slider"`
	Outputs  []string         `json:"outputs"`
	Version  uint64           `json:"version"`
}

// DropdownResponse describes the launch-site dropdown.
type DropdownResponse struct {
	ID          string           `json:"id"`
	Options     []OptionResponse `json:"options"`
	Value       string           `json:"value"`
	Placeholder string           `json:"placeholder"`
	Searchable  bool             `json:"searchable"`
}

// OptionResponse is one dropdown entry.
type OptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SliderResponse describes the payload range slider.
type SliderResponse struct {
	ID    string         `json:"id"`
	Min   float64        `json:"min"`
	Max   float64        `json:"max"`
	Step  float64        `json:"step"`
	Marks []MarkResponse `json:"marks"`
	Value [2]float64     `json:"value"`
}

// MarkResponse is one labelled slider tick.
type MarkResponse struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
