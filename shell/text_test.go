package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func textOf(t *testing.T, fragment string) string {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	require.NoError(t, err)
	return Text(nodes...)
}

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blocks",
			in:   "<h1>Title</h1><p>Hello <b>world</b></p><ul><li>a</li><li>b</li></ul>",
			want: "Title\n\nHello world\n\n• a\n• b",
		},
		{
			name: "whitespace collapses",
			in:   "<p>  lots   of\n\n  space </p>",
			want: "lots of space",
		},
		{
			name: "inline spacing kept",
			in:   "<p>a <em>b</em> c</p>",
			want: "a b c",
		},
		{
			name: "script dropped",
			in:   "<p>x</p><script>var y = 1;</script><style>p{}</style>",
			want: "x",
		},
		{
			name: "line break",
			in:   "<p>one<br>two</p>",
			want: "one\ntwo",
		},
		{
			name: "plain text",
			in:   "just text",
			want: "just text",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, textOf(t, tc.in))
		})
	}
}
