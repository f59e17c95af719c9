package testsupport

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Screen wraps a parsed HTML document and offers the queries behaviour tests
// need: by test id, by label text, by visible text and by role.
type Screen struct {
	root *html.Node
}

// ParseScreen parses rendered markup, failing the test on error.
func ParseScreen(t testing.TB, markup []byte) *Screen {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return &Screen{root: root}
}

// QueryAllByTestID returns every element whose data-testid equals id.
func (s *Screen) QueryAllByTestID(id string) []*html.Node {
	return s.findAll(func(n *html.Node) bool {
		return Attr(n, "data-testid") == id
	})
}

// QueryByTestID returns the first element carrying id, or nil.
func (s *Screen) QueryByTestID(id string) *html.Node {
	nodes := s.QueryAllByTestID(id)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// QueryByText returns the first element whose own text content, trimmed,
// equals text exactly.
func (s *Screen) QueryByText(text string) *html.Node {
	want := normalizeSpace(text)
	matches := s.findAll(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom != atom.Script && ownText(n) == want
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindByText returns the first element whose own text matches pattern.
func (s *Screen) FindByText(pattern *regexp.Regexp) *html.Node {
	matches := s.findAll(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom != atom.Script && pattern.MatchString(ownText(n))
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// GetByLabelText resolves a <label> whose text matches pattern to the
// control referenced by its for attribute.
func (s *Screen) GetByLabelText(t testing.TB, pattern *regexp.Regexp) *html.Node {
	t.Helper()
	labels := s.findAll(func(n *html.Node) bool {
		return n.DataAtom == atom.Label && pattern.MatchString(TextContent(n))
	})
	if len(labels) == 0 {
		t.Fatalf("no label matching %s", pattern)
	}
	if len(labels) > 1 {
		t.Fatalf("found %d labels matching %s", len(labels), pattern)
	}
	id := Attr(labels[0], "for")
	control := s.findAll(func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
	if id == "" || len(control) == 0 {
		t.Fatalf("label %q does not reference a control", TextContent(labels[0]))
	}
	return control[0]
}

// GetAllByRole returns elements with the implicit or explicit ARIA role. Only
// the roles the contact form uses are recognised.
func (s *Screen) GetAllByRole(role string) []*html.Node {
	return s.findAll(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if explicit := Attr(n, "role"); explicit != "" {
			return explicit == role
		}
		switch role {
		case "button":
			if n.DataAtom == atom.Button {
				return true
			}
			if n.DataAtom == atom.Input {
				kind := Attr(n, "type")
				return kind == "submit" || kind == "button"
			}
		case "heading":
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				return true
			}
		case "textbox":
			if n.DataAtom == atom.Textarea {
				return true
			}
			if n.DataAtom == atom.Input {
				switch Attr(n, "type") {
				case "", "text", "email":
					return true
				}
			}
		}
		return false
	})
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if n != nil {
		walk(n)
	}
	return normalizeSpace(b.String())
}

// ownText matches the way testing-library's default text matcher reads an
// element: the full text content when the element has no element children,
// otherwise only its direct text nodes.
func ownText(n *html.Node) string {
	hasElementChild := false
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			b.WriteString(child.Data)
		case html.ElementNode:
			hasElementChild = true
		}
	}
	if !hasElementChild {
		return TextContent(n)
	}
	return normalizeSpace(b.String())
}

var outlineAttrs = []string{
	"type", "id", "name", "for", "method", "action", "value", "placeholder",
	"data-testid", "data-field", "aria-required", "aria-invalid", "aria-describedby",
}

// Outline renders the form-relevant elements of the screen one per line, in
// document order: headings, the form, labels, controls, test-id blocks and
// buttons, with a fixed attribute order and their text. Styling and scripts
// are left out so snapshots only move when structure or content does.
func (s *Screen) Outline() string {
	var b strings.Builder
	for _, n := range s.findAll(outlined) {
		b.WriteString(n.Data)
		for _, key := range outlineAttrs {
			if val, ok := attrValue(n, key); ok {
				fmt.Fprintf(&b, " %s=%q", key, val)
			}
		}
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.Label, atom.Button, atom.P, atom.Textarea:
			fmt.Fprintf(&b, " %q", TextContent(n))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func outlined(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.Form, atom.Label, atom.Input, atom.Textarea, atom.Button:
		return true
	case atom.P, atom.Section:
		_, ok := attrValue(n, "data-testid")
		return ok
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func (s *Screen) findAll(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(s.root)
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
