package dom

import (
	"io"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Render writes n like html.Render, except that children of void elements are skipped at any depth rather than
// rejected. Children of void elements only occur when innerHTML was assigned to one.
func Render(w io.Writer, n *html.Node) error {
	if !hasVoidChildren(n) {
		return html.Render(w, n)
	}
	return html.Render(w, prune(n))
}

func hasVoidChildren(n *html.Node) bool {
	if n.Type == html.ElementNode && voidElements[n.Data] && n.FirstChild != nil {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasVoidChildren(c) {
			return true
		}
	}
	return false
}

// prune returns a detached copy of n without the children of void elements. Attributes are shared with n.
func prune(n *html.Node) *html.Node {
	ret := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      n.Attr,
	}
	if n.Type == html.ElementNode && voidElements[n.Data] {
		return ret
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ret.AppendChild(prune(c))
	}
	return ret
}
