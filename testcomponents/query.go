package testcomponents

import (
	"slices"
	"strings"

	"github.com/vcrobe/storefront/vdom"
)

// FindAll returns every node in the tree, depth first, for which match is true.
func FindAll(root *vdom.VNode, match func(*vdom.VNode) bool) []*vdom.VNode {
	var out []*vdom.VNode
	var walk func(n *vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil {
			return
		}
		if match(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Find returns the first node for which match is true, or nil.
func Find(root *vdom.VNode, match func(*vdom.VNode) bool) *vdom.VNode {
	if found := FindAll(root, match); len(found) > 0 {
		return found[0]
	}
	return nil
}

// HasClass matches nodes whose class attribute contains class as a word.
func HasClass(class string) func(*vdom.VNode) bool {
	return func(n *vdom.VNode) bool {
		v, ok := n.Attr("class")
		return ok && slices.Contains(strings.Fields(v), class)
	}
}

// Cards returns the product cards rendered in the tree.
func Cards(root *vdom.VNode) []*vdom.VNode {
	return FindAll(root, HasClass("product"))
}

// CardText returns the text of the first descendant of card with the given class.
func CardText(card *vdom.VNode, class string) string {
	if n := Find(card, HasClass(class)); n != nil {
		return n.Content
	}
	return ""
}
