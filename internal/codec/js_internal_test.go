package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnquoteJS(t *testing.T) {
	cases := map[string]string{
		`"plain"`:                 "plain",
		`'single'`:                "single",
		`"a\nb"`:                  "a\nb",
		`"é\u{1F600}"`:            "é😀",
		`"back\\slash"`:           `back\slash`,
		`"line\` + "\n" + `cont"`: "linecont",
	}
	for in, want := range cases {
		got, err := unquoteJS([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{`"open`, `x`, `"\u{110000}"`, `"\uZZZZ"`} {
		_, err := unquoteJS([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestQuoteJSRoundTrip(t *testing.T) {
	for _, s := range []string{"Main Page", `say "hi"`, `a\b`, "tab\tnew\nline", "é"} {
		got, err := unquoteJS([]byte(quoteJS(s)))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, `"a\u0009b"`, quoteJS("a\tb"))
}
