package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEmail(t *testing.T) {
	h1 := HashEmail("dana@example.com")
	h2 := HashEmail("  Dana@Example.com ")
	h3 := HashEmail("someone@example.com")

	assert.Equal(t, h1, h2, "case and whitespace should not change the hash")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64, "SHA-256 hex should be 64 chars")
}

func TestScrubPII(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"email", "contact me at john@example.com please", "contact me at [EMAIL] please"},
		{"phone", "call me at (330) 333-2654", "call me at[PHONE]"},
		{"phone with plus", "my number is +15005550002", "my number is [PHONE]"},
		{"both", "email: a@b.com phone: 330-333-2654", "email: [EMAIL] phone:[PHONE]"},
		{"no pii", "Our pipeline dried up last quarter", "Our pipeline dried up last quarter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ScrubPII(tt.input))
		})
	}
}

func TestScrubAnswers(t *testing.T) {
	in := map[string]string{
		"name":         "Dana Reyes",
		"email":        "dana@example.com",
		"phone":        "555-0100",
		"company_size": "11-50",
		"challenge":    "reach me at dana@example.com",
	}
	out := ScrubAnswers(in)

	assert.Equal(t, map[string]string{
		"company_size": "11-50",
		"challenge":    "reach me at [EMAIL]",
	}, out)
	assert.Equal(t, "Dana Reyes", in["name"], "input must not be modified")
}
