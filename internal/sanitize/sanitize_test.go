package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Acme Widgets", "Acme Widgets"},
		{"tags stripped", "<b>Acme</b> Widgets", "Acme Widgets"},
		{"script removed entirely", "<script>alert(1)</script>Acme", "Acme"},
		{"attributes gone with the tag", `<a href="https://evil.example">x</a>`, "x"},
		{"whitespace trimmed", "  Acme  ", "Acme"},
		{"empty after stripping", "<i></i>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextPtr(t *testing.T) {
	assert.Nil(t, TextPtr(nil))

	in := " <b>desc</b> "
	out := TextPtr(&in)
	assert.Equal(t, "desc", *out)
}
