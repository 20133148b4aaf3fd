package parser

import (
	"fmt"

	"eventkompass/models"
)

// SourceCards decorates each grounding source with a rating, review count and
// preview image. The values only depend on the position of the source.
func SourceCards(sources []models.GroundingSource) []models.SourceCard {
	cards := make([]models.SourceCard, 0, len(sources))
	for i, src := range sources {
		cards = append(cards, models.SourceCard{
			GroundingSource: src,
			Rating:          4.0 + float64((i*7)%11)/10,
			ReviewCount:     120 + (i*137)%880,
			ImageURL:        fmt.Sprintf("https://picsum.photos/seed/eventkompass-%d/640/400", i),
		})
	}
	return cards
}
