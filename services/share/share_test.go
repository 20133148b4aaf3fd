package share

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventkompass/models"
)

func TestLinks(t *testing.T) {
	links := Links(models.CategorySports, "Derby & Co", "https://eventkompass.de/discovery/Sports")
	require.Len(t, links, 4)

	networks := make([]string, 0, len(links))
	for _, l := range links {
		networks = append(networks, l.Network)
	}
	assert.Equal(t, []string{"facebook", "x", "whatsapp", "email"}, networks)

	x, err := url.Parse(links[1].URL)
	require.NoError(t, err)
	assert.Equal(t, "Check out this Sports event: Derby & Co", x.Query().Get("text"))
	assert.Equal(t, "https://eventkompass.de/discovery/Sports", x.Query().Get("url"))

	mail, err := url.Parse(links[3].URL)
	require.NoError(t, err)
	assert.Equal(t, "mailto", mail.Scheme)
	assert.Equal(t, "Event Idea: Derby & Co", mail.Query().Get("subject"))
}
