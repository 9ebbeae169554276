package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Acme Corp",
			want:  "Acme Corp",
		},
		{
			name:  "trims whitespace",
			input: "  Jane Doe  ",
			want:  "Jane Doe",
		},
		{
			name:  "strips tags",
			input: "<script>alert(1)</script>Jane",
			want:  "alert(1)Jane",
		},
		{
			name:  "escapes markup characters",
			input: `O'Brien & Sons "Ltd"`,
			want:  "O&#39;Brien &amp; Sons &#34;Ltd&#34;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Field(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", Email("  Jane@Example.Com "))
	assert.Equal(t, "jane@example.com", Email("jane@example.com"))
}
