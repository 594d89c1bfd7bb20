package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Newton's First LAW", want: "newton s first law"},
		{name: "strips punctuation", in: "what is F = m*a?", want: "what is f m a"},
		{name: "collapses whitespace", in: "  force \t and\n motion  ", want: "force and motion"},
		{name: "keeps digits", in: "class 8 science", want: "class 8 science"},
		{name: "only punctuation", in: "?!...", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "non latin runes become spaces", in: "बल force", want: "force"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeText(tc.in))
		})
	}
}
