package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"eventkompass/models"
)

var umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// slugify lowercases s and keeps only [a-z0-9]; every other run of runes
// becomes a single dash. Ids built from it are safe as one URL path segment.
func slugify(s string) string {
	s = umlauts.Replace(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// DeriveEventID builds the booking id for an event. The readable part keeps the
// event-{category}-{location}-{title} shape; the suffix hashes category,
// location, title and date so two events sharing a title on different days do
// not collide. Without a usable title a time-based uuid is used instead.
func DeriveEventID(category models.Category, location, title, date string) string {
	slug := slugify(title)
	if slug == "" {
		id, err := uuid.NewUUID()
		if err != nil {
			id = uuid.New()
		}
		return "event-" + id.String()
	}

	sum := sha256.Sum256([]byte(strings.Join([]string{string(category), location, title, date}, "|")))
	parts := []string{"event", string(category)}
	if loc := slugify(location); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, slug, hex.EncodeToString(sum[:4]))
	return strings.Join(parts, "-")
}
