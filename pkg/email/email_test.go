package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"awa.diop@cdp.sn":       "Awa Diop",
		"MOUSSA_SARR@orange.sn": "Moussa Sarr",
		"jean-paul+test@x.sn":   "Jean Paul Test",
		"agent42@cdp.sn":        "Agent",
		"élodie.faye@cdp.sn":    "Élodie Faye",
		"123@cdp.sn":            "Utilisateur",
		"":                      "Utilisateur",
	}
	for in, want := range cases {
		assert.Equal(t, want, DisplayName(in), in)
	}
}
