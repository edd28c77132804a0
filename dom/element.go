package dom

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Element is an HTML element node.
type Element struct {
	Node *html.Node
}

func (e *Element) LocalName() string {
	return e.Node.Data
}

// TagName is the upper-cased qualified name, as browsers report it for HTML elements.
func (e *Element) TagName() string {
	return asciiUpper(e.Node.Data)
}

// Parent returns the element this one is attached to, or nil when detached.
func (e *Element) Parent() *html.Node {
	return e.Node.Parent
}

// SetInnerHTML replaces all children of e with the nodes produced by parsing markup as an HTML fragment in the
// context of e. No sanitization is performed.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.Node)
	if err != nil {
		return err
	}
	for c := e.Node.FirstChild; c != nil; c = e.Node.FirstChild {
		e.Node.RemoveChild(c)
	}
	for _, n := range nodes {
		e.Node.AppendChild(n)
	}
	return nil
}

// SetAttribute sets the attribute name to value. The name is lowercased; an existing attribute keeps its position.
func (e *Element) SetAttribute(name, value string) error {
	if !validName(name) {
		return exception(ErrInvalidCharacter.Name, "%q is not a valid attribute name", name)
	}
	name = asciiLower(name)
	for i := range e.Node.Attr {
		if e.Node.Attr[i].Namespace == "" && e.Node.Attr[i].Key == name {
			e.Node.Attr[i].Val = value
			return nil
		}
	}
	e.Node.Attr = append(e.Node.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

func (e *Element) GetAttribute(name string) (string, bool) {
	name = asciiLower(name)
	for _, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

func (e *Element) RemoveAttribute(name string) {
	name = asciiLower(name)
	for i, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.Node.Attr = append(e.Node.Attr[:i], e.Node.Attr[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of e's attributes in document order.
func (e *Element) Attributes() []html.Attribute {
	return append([]html.Attribute(nil), e.Node.Attr...)
}

func (e *Element) ChildNodes() []*html.Node {
	var ret []*html.Node
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		ret = append(ret, c)
	}
	return ret
}

// AppendChild attaches child as the last child of e. A child that is attached elsewhere is moved.
func (e *Element) AppendChild(child *html.Node) error {
	for p := e.Node; p != nil; p = p.Parent {
		if p == child {
			return exception(ErrHierarchyRequest.Name, "cannot append an ancestor of <%s> to it", e.Node.Data)
		}
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	e.Node.AppendChild(child)
	return nil
}

// TextContent concatenates the text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.Node)
	return b.String()
}

// InnerHTML serializes e's children. Void elements have no serialized children.
func (e *Element) InnerHTML() (string, error) {
	if voidElements[e.Node.Data] {
		return "", nil
	}
	var buf bytes.Buffer
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		if err := Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes e and its children.
func (e *Element) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, e.Node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// QuerySelector returns the first descendant matching selector, or nil.
func (e *Element) QuerySelector(selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		if n := sel.MatchFirst(c); n != nil {
			return Wrap(n), nil
		}
	}
	return nil, nil
}

// QuerySelectorAll returns every descendant matching selector in document order.
func (e *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	var ret []*Element
	for c := e.Node.FirstChild; c != nil; c = c.NextSibling {
		for _, n := range sel.MatchAll(c) {
			ret = append(ret, Wrap(n))
		}
	}
	return ret, nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, exception(ErrSyntax.Name, "%q is not a valid selector: %v", selector, err)
	}
	return sel, nil
}
