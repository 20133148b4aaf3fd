package models

// SearchRequest is the payload coming from the frontend into /api/search.
type SearchRequest struct {
	Query string `json:"query" binding:"required"` // typed or transcribed search text
}

// SearchResponse tells the frontend where the classified query leads.
type SearchResponse struct {
	Category        Category `json:"category"`
	Location        string   `json:"location"`        // session location after the search
	LocationChanged bool     `json:"locationChanged"` // true when the classifier named a city
	Path            string   `json:"path"`            // navigation target, e.g. /discovery/Dining
	Fallback        bool     `json:"fallback"`        // classifier failed and the default was used
}

// TranscriptionResponse is returned by /api/stt.
type TranscriptionResponse struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// ClassifierOutput mirrors the JSON schema the classification model answers with.
type ClassifierOutput struct {
	Category string  `json:"category"`
	Location *string `json:"location"`
}
