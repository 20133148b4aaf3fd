package models

// EventItem is a bookable event held in a session's booking list.
type EventItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Date        string   `json:"date"` // display-formatted, not a structured date
	Category    Category `json:"category"`
	URL         string   `json:"url,omitempty"`
}

// GroundingSource is a citation returned alongside a grounded AI response.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ParsedEvent is a row extracted from a table in the AI response text.
type ParsedEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// SourceCard decorates a grounding source for display.
type SourceCard struct {
	GroundingSource
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	ImageURL    string  `json:"imageUrl"`
}

// DiscoveryView is what the discovery endpoint renders for a category and location.
type DiscoveryView struct {
	Category  Category      `json:"category"`
	Location  string        `json:"location"`
	Language  Language      `json:"language"`
	Theme     CategoryTheme `json:"theme"`
	Text      string        `json:"text"`
	Intro     string        `json:"intro"`
	Events    []ParsedEvent `json:"events"`
	Sources   []SourceCard  `json:"sources"`
	Failed    bool          `json:"failed"`
	Token     uint64        `json:"token"`
	Grounding string        `json:"grounding"` // "maps" or "search"
}
