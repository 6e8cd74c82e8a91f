package models

// DateRange bounds record dates. Both ends are inclusive ISO dates; an empty string leaves that end open.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterState is the dashboard filter configuration. The zero value applies no restriction.
// Values are replaced wholesale through filters.Reduce rather than mutated.
type FilterState struct {
	DateRange  DateRange  `json:"date_range"`
	Categories []Category `json:"categories"`
	Regions    []Region   `json:"regions"`
	SearchTerm string     `json:"search_term"`
}
