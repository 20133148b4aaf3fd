package booking

import (
	"strings"

	"eventkompass/models"
)

func validateEvent(ev models.EventItem) error {
	if strings.TrimSpace(ev.ID) == "" {
		return NewValidationError("id is required")
	}
	if strings.TrimSpace(ev.Title) == "" {
		return NewValidationError("title is required")
	}
	if !ev.Category.Valid() {
		return NewValidationError("category must be one of Festivent, Sports, Dining, Career")
	}
	return nil
}
