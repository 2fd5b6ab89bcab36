package shell

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text flattens HTML nodes to plain text. Block elements start new lines,
// paragraphs and headings are separated by a blank line, list items get a
// bullet, and script/style content is dropped.
func Text(nodes ...*html.Node) string {
	var w textWriter
	for _, n := range nodes {
		w.walk(n)
	}
	return strings.TrimSpace(w.b.String())
}

type textWriter struct {
	b       strings.Builder
	pending int  // newlines owed before the next word
	space   bool // a space is owed before the next word
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.write(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Template:
			return
		case atom.Br:
			w.newline(1)
			return
		}
	}

	gap := blockGap(n)
	w.newline(gap)
	if n.DataAtom == atom.Li {
		w.write("• ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	w.newline(gap)
}

func (w *textWriter) newline(n int) {
	if n > w.pending {
		w.pending = n
	}
}

func (w *textWriter) write(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" && w.pending == 0 {
			w.space = true
		}
		return
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)

	switch {
	case w.b.Len() == 0:
	case w.pending > 0:
		w.b.WriteString(strings.Repeat("\n", w.pending))
	case w.space || unicode.IsSpace(first):
		w.b.WriteByte(' ')
	}
	w.pending = 0
	w.b.WriteString(strings.Join(words, " "))
	w.space = unicode.IsSpace(last)
}

func blockGap(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Pre, atom.Blockquote, atom.Table:
		return 2
	case atom.Div, atom.Li, atom.Tr, atom.Section, atom.Article, atom.Header,
		atom.Footer, atom.Nav, atom.Main, atom.Aside, atom.Dt, atom.Dd, atom.Hr:
		return 1
	}
	return 0
}
