// Package share builds the social share links of an event.
package share

import (
	"fmt"
	"net/url"

	"eventkompass/models"
)

// Link is one share target.
type Link struct {
	Network string `json:"network"`
	Icon    string `json:"icon"`
	URL     string `json:"url"`
}

// Links returns the Facebook, X, WhatsApp and e-mail links for an event page.
func Links(category models.Category, title, pageURL string) []Link {
	teaser := fmt.Sprintf("Check out this %s event: %s", category, title)

	return []Link{
		{
			Network: "facebook",
			Icon:    "fa-facebook-f",
			URL:     withQuery("https://www.facebook.com/sharer/sharer.php", url.Values{"u": {pageURL}}),
		},
		{
			Network: "x",
			Icon:    "fa-x-twitter",
			URL:     withQuery("https://twitter.com/intent/tweet", url.Values{"text": {teaser}, "url": {pageURL}}),
		},
		{
			Network: "whatsapp",
			Icon:    "fa-whatsapp",
			URL:     withQuery("https://wa.me/", url.Values{"text": {teaser + " - " + pageURL}}),
		},
		{
			Network: "email",
			Icon:    "fa-envelope",
			URL: withQuery("mailto:", url.Values{
				"subject": {"Event Idea: " + title},
				"body":    {"Hey, check out this event on EventKompass: " + pageURL},
			}),
		},
	}
}

func withQuery(base string, q url.Values) string {
	return base + "?" + q.Encode()
}
