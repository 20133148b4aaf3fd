// Package classifier turns a free-text search into a navigable category and location.
package classifier

import (
	"context"
	"errors"
	"strings"

	"eventkompass/models"
	ai "eventkompass/services/intelligence"
	"eventkompass/services/navigation"
)

// ErrEmptyQuery is returned for blank input. Callers reject it before classifying.
var ErrEmptyQuery = errors.New("query must not be empty")

// Intent is where a query leads.
type Intent struct {
	Category        models.Category
	Location        string
	LocationChanged bool
	Fallback        bool
}

// Path is the discovery route of the intent.
func (i Intent) Path() string {
	return navigation.DiscoveryPath(i.Category)
}

// QueryClassifier calls the gateway once per query; failures fall back to the
// default category and leave the location alone.
type QueryClassifier struct {
	Gateway ai.Gateway
}

func New(gw ai.Gateway) *QueryClassifier {
	return &QueryClassifier{Gateway: gw}
}

// Classify resolves query against currentLocation. A returned location replaces
// the current one entirely.
func (q *QueryClassifier) Classify(ctx context.Context, query, currentLocation string) (Intent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Intent{}, ErrEmptyQuery
	}

	res := q.Gateway.ClassifyQuery(ctx, query)

	intent := Intent{
		Category: models.ParseCategory(string(res.Category)),
		Location: currentLocation,
		Fallback: res.Fallback,
	}
	if res.Location != nil {
		if loc := strings.TrimSpace(*res.Location); loc != "" {
			intent.Location = loc
			intent.LocationChanged = loc != currentLocation
		}
	}
	return intent, nil
}
