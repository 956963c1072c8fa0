//go:build js || wasm

package vdom

import (
	"syscall/js"

	"github.com/vcrobe/storefront/console"
)

// Clear empties the element matching selector.
func Clear(selector string) {
	mount, ok := querySelector(selector)
	if !ok {
		return
	}
	mount.Set("innerHTML", "")
}

// RenderToSelector mounts the VNode under the first element matching the CSS selector.
func RenderToSelector(selector string, n *VNode) {
	if n == nil {
		return
	}
	mount, ok := querySelector(selector)
	if !ok {
		return
	}
	RenderTo(mount, n)
}

// RenderTo appends the rendered node to a specific mount element.
func RenderTo(mount js.Value, n *VNode) {
	if n == nil {
		return
	}
	if el := createElement(n); el.Truthy() {
		mount.Call("appendChild", el)
	}
}

func querySelector(selector string) (js.Value, bool) {
	if selector == "" {
		return js.Undefined(), false
	}
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return js.Undefined(), false
	}
	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("Mount element not found for selector:", selector)
		return js.Undefined(), false
	}
	return mount, true
}

// setAttributeValue sets an attribute on an element, handling boolean attributes.
func setAttributeValue(el js.Value, key string, value any) {
	if isEventAttr(key) {
		return
	}
	if b, ok := value.(bool); ok {
		if b {
			el.Call("setAttribute", key, "")
		} else {
			el.Call("removeAttribute", key)
		}
		return
	}
	el.Call("setAttribute", key, attrString(value))
}

func createElement(n *VNode) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() || n == nil {
		return js.Undefined()
	}

	if n.Tag == TextTag {
		if n.Content == "" {
			return js.Undefined()
		}
		return doc.Call("createTextNode", n.Content)
	}

	switch n.Tag {
	case "main", "article", "div", "section", "header", "footer", "span",
		"p", "h1", "h2", "h3", "h4", "h5", "h6", "button", "img", "a", "ul", "li":
	default:
		console.Error("Unsupported tag: ", n.Tag)
		return js.Undefined()
	}

	el := doc.Call("createElement", n.Tag)
	for k, v := range n.Attributes {
		setAttributeValue(el, k, v)
	}
	if n.Content != "" {
		el.Set("textContent", n.Content)
	}
	for _, child := range n.Children {
		if childEl := createElement(child); childEl.Truthy() {
			el.Call("appendChild", childEl)
		}
	}
	return el
}

// Patch updates the DOM by comparing old and new VDOM trees and applying minimal changes.
func Patch(mountSelector string, oldVNode, newVNode *VNode) {
	if oldVNode == nil || newVNode == nil {
		return
	}
	mount, ok := querySelector(mountSelector)
	if !ok {
		return
	}

	rootElement := mount.Get("firstChild")
	if !rootElement.Truthy() {
		RenderTo(mount, newVNode)
		return
	}
	patchElement(rootElement, oldVNode, newVNode)
}

func replaceElement(domElement js.Value, newVNode *VNode) {
	newElement := createElement(newVNode)
	if !newElement.Truthy() {
		return
	}
	if parent := domElement.Get("parentNode"); parent.Truthy() {
		parent.Call("replaceChild", newElement, domElement)
	}
}

// patchElement updates a single DOM element based on VDOM differences.
func patchElement(domElement js.Value, oldVNode, newVNode *VNode) {
	if !domElement.Truthy() || oldVNode == nil || newVNode == nil {
		return
	}

	// Different component instance or different tag: rebuild the subtree.
	if oldVNode.ComponentKey != newVNode.ComponentKey || oldVNode.Tag != newVNode.Tag {
		replaceElement(domElement, newVNode)
		return
	}

	if newVNode.Tag == TextTag {
		if oldVNode.Content != newVNode.Content {
			domElement.Set("nodeValue", newVNode.Content)
		}
		return
	}

	patchAttributes(domElement, oldVNode.Attributes, newVNode.Attributes)

	// Setting textContent wipes out all child nodes, so only do it for leaves.
	if len(newVNode.Children) == 0 && oldVNode.Content != newVNode.Content {
		domElement.Set("textContent", newVNode.Content)
	}

	patchChildren(domElement, oldVNode.Children, newVNode.Children)
}

// patchAttributes updates the attributes of a DOM element.
func patchAttributes(domElement js.Value, oldAttrs, newAttrs map[string]any) {
	for key := range oldAttrs {
		if _, exists := newAttrs[key]; !exists && !isEventAttr(key) {
			domElement.Call("removeAttribute", key)
		}
	}
	for key, value := range newAttrs {
		if oldAttrs == nil || oldAttrs[key] != value {
			setAttributeValue(domElement, key, value)
		}
	}
}

// patchChildren updates the children of a DOM element.
func patchChildren(domElement js.Value, oldChildren, newChildren []*VNode) {
	oldLen := len(oldChildren)
	newLen := len(newChildren)
	domChildren := domElement.Get("childNodes")

	for i := 0; i < min(oldLen, newLen); i++ {
		if childElement := domChildren.Call("item", i); childElement.Truthy() {
			patchElement(childElement, oldChildren[i], newChildren[i])
		}
	}

	for i := oldLen; i < newLen; i++ {
		if newChild := createElement(newChildren[i]); newChild.Truthy() {
			domElement.Call("appendChild", newChild)
		}
	}

	for i := oldLen - 1; i >= newLen; i-- {
		if childElement := domChildren.Call("item", i); childElement.Truthy() {
			domElement.Call("removeChild", childElement)
		}
	}
}
