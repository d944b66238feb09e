package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
		not  []string
	}{
		{
			name: "heading and emphasis",
			html: "<h1>Title</h1><p>Some <b>bold</b> text.</p>",
			want: []string{"# Title", "**bold**"},
		},
		{
			name: "local link retargeted",
			html: `<p><a href="procedure_Abs.html">Abs</a></p>`,
			want: []string{"[Abs](procedure_Abs.md)"},
			not:  []string{".html"},
		},
		{
			name: "external link kept",
			html: `<p><a href="https://example.com/page.html">site</a></p>`,
			want: []string{"[site](https://example.com/page.html)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Normalize(tt.html)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, n := range tt.not {
				assert.NotContains(t, got, n)
			}
		})
	}
}
