package vdom

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes the VNode tree as HTML to w.
// Attributes are written in sorted order so output is stable across renders.
func RenderHTML(w io.Writer, n *VNode) error {
	if n == nil {
		return nil
	}
	if err := html.Render(w, ToHTMLNode(n)); err != nil {
		return fmt.Errorf("render %s: %w", n.Tag, err)
	}
	return nil
}

// HTMLString is RenderHTML into a string.
func HTMLString(n *VNode) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToHTMLNode converts a VNode tree into an x/net/html node tree.
func ToHTMLNode(n *VNode) *html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == TextTag {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := n.Attributes[k]
		if b, ok := v.(bool); ok && !b {
			continue
		}
		if isEventAttr(k) {
			continue
		}
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: attrString(v)})
	}

	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, c := range n.Children {
		if child := ToHTMLNode(c); child != nil {
			el.AppendChild(child)
		}
	}
	return el
}

// attrString renders an attribute value the way the DOM stringifies it.
// Boolean attributes are present with an empty value.
func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return ""
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// isEventAttr reports whether the attribute key names an event handler ("onClick").
func isEventAttr(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n' && key[2] >= 'A' && key[2] <= 'Z'
}
