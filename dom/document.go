package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document creates elements. It holds no state: elements it creates are detached and owned by the caller.
type Document struct{}

func NewDocument() *Document {
	return &Document{}
}

// CreateElement returns a new, detached element named name. The name is lowercased; a name that is not a valid XML
// name is an InvalidCharacterError. Unknown tag names produce a generic element.
func (d *Document) CreateElement(name string) (*Element, error) {
	if !validName(name) {
		return nil, exception(ErrInvalidCharacter.Name, "%q is not a valid element name", name)
	}
	localName := LocalNameOf(name)
	return &Element{
		Node: &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(localName)),
			Data:     localName,
		},
	}, nil
}

// Wrap returns the Element for an existing element node.
func Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{Node: n}
}

// LocalNameOf is the local name CreateElement gives an element created as name. Only ASCII letters are folded.
func LocalNameOf(name string) string {
	return asciiLower(name)
}
