package epg

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var tagStart = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9-]*)`)

// escapeUnknownTags turns the "<" of anything that is not an HTML element
// name into text, so "Khobor <Live>" survives parsing.
func escapeUnknownTags(s string) string {
	return tagStart.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.TrimPrefix(m[1:], "/")
		if atom.Lookup([]byte(strings.ToLower(name))) != 0 {
			return m
		}
		return "&lt;" + m[1:]
	})
}

type textBuilder struct {
	strings.Builder
	gap bool
}

func (b *textBuilder) text(s string) {
	if s == "" {
		return
	}
	if b.gap && b.Len() > 0 {
		last, _ := utf8.DecodeLastRuneInString(b.String())
		first, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(last) && !unicode.IsSpace(first) {
			b.WriteByte(' ')
		}
	}
	b.gap = false
	b.WriteString(s)
}

func (b *textBuilder) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			b.text(node.Data)
		case html.ElementNode:
			b.gap = true
			b.walk(s)
			b.gap = true
		default:
			b.gap = true
		}
	})
}

// CleanText decodes HTML entities in feed text and replaces HTML tags with
// a space. Everything else, including surrounding whitespace and
// tag-like text that is not HTML, is kept. Strings without "<" or "&"
// are returned as is.
func CleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(escapeUnknownTags(s)), body)
	if err != nil {
		return s
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	var b textBuilder
	b.walk(goquery.NewDocumentFromNode(body).Selection)
	return b.String()
}
