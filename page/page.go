// Package page loads HTML documents, local or remote, and attaches elements to them.
package page

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/headzoo/surf"
	"github.com/headzoo/surf/browser"
	"github.com/pdbogen/mkelem/dom"
	log2 "github.com/pdbogen/mkelem/log"
)

var log = log2.Logger("page")

type Page struct {
	bow *browser.Browser
	doc *goquery.Document
}

// Open loads pageUrl in a new surf browser. Redirects are followed; a response that is not HTML still loads, but
// will have no elements to attach to.
func Open(pageUrl string) (*Page, error) {
	bow := surf.NewBrowser()
	if err := bow.Open(pageUrl); err != nil {
		return nil, fmt.Errorf("opening %s: %w", pageUrl, err)
	}
	log.Debugf("Got page %q (%d) from %s", bow.Title(), bow.StatusCode(), bow.Url())
	if code := bow.StatusCode(); code >= 400 {
		return nil, fmt.Errorf("opening %s: server answered %d", pageUrl, code)
	}
	return &Page{bow: bow}, nil
}

// Read parses a document from r.
func Read(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Page{doc: doc}, nil
}

func (p *Page) root() *goquery.Selection {
	if p.bow != nil {
		return p.bow.Dom()
	}
	return p.doc.Selection
}

func (p *Page) Title() string {
	if p.bow != nil {
		return p.bow.Title()
	}
	return p.doc.Find("title").First().Text()
}

func (p *Page) Find(selector string) *goquery.Selection {
	return p.root().Find(selector)
}

// Attach appends el as the last child of every element matching selector, and returns how many elements matched.
// The last match receives el itself; the others receive copies. It is an error for nothing to match.
func (p *Page) Attach(selector string, el *dom.Element) (int, error) {
	targets := p.Find(selector)
	if targets.Length() == 0 {
		return 0, fmt.Errorf("no element matches %q", selector)
	}
	log.Debugf("attaching <%s> to %d element(s) matching %q", el.LocalName(), targets.Length(), selector)
	targets.AppendNodes(el.Node)
	return targets.Length(), nil
}

// HTML serializes the whole document. Children of void elements, which only attached elements can have, are left out.
func (p *Page) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range p.root().Nodes {
		if err := dom.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering document: %w", err)
		}
	}
	return buf.String(), nil
}
