package vdom

import "maps"

// TextTag marks a VNode that renders as a bare text node.
const TextTag = "#text"

// VNode represents a virtual DOM node.
type VNode struct {
	Tag          string         // The HTML tag name
	Attributes   map[string]any // The attributes of the node
	Children     []*VNode       // The child nodes
	Content      string         // The text content of the node
	ComponentKey string         // Key of the component that produced this node, if any
}

// NewVNode creates a new VNode. Nil children are dropped so conditional
// builders can pass them through.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var kept []*VNode
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   kept,
		Content:    content,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// Attr returns the attribute value rendered as a string, and whether it is set.
func (v *VNode) Attr(name string) (string, bool) {
	if v == nil || v.Attributes == nil {
		return "", false
	}
	val, ok := v.Attributes[name]
	if !ok {
		return "", false
	}
	return attrString(val), true
}

// Clone returns a deep copy of the node tree.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	out := &VNode{
		Tag:          v.Tag,
		Attributes:   maps.Clone(v.Attributes),
		Content:      v.Content,
		ComponentKey: v.ComponentKey,
	}
	if v.Children != nil {
		out.Children = make([]*VNode, len(v.Children))
		for i, c := range v.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Text creates a bare text node.
func Text(content string) *VNode {
	return NewVNode(TextTag, nil, nil, content)
}

// Element creates a VNode with an arbitrary tag.
func Element(tag string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode(tag, attrs, children, "")
}

// Paragraph creates a <p> VNode with the given text as its content and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Heading creates an <h1>..<h6> VNode. Levels outside 1-6 are clamped.
func Heading(level int, text string, attrs map[string]any) *VNode {
	level = min(max(level, 1), 6)
	return NewVNode("h"+string(rune('0'+level)), attrs, nil, text)
}

// Image creates an <img> VNode.
func Image(src, alt string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["src"] = src
	attrs["alt"] = alt
	return NewVNode("img", attrs, nil, "")
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Article creates an <article> VNode.
func Article(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("article", attrs, children, "")
}

// Main creates a <main> VNode.
func Main(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("main", attrs, children, "")
}

// Button creates a <button> VNode with the given label.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
