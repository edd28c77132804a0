// Package elem builds detached DOM elements from a tag name, attributes, and markup content.
package elem

import (
	"github.com/pdbogen/mkelem/dom"
	"github.com/pdbogen/mkelem/types"
)

// Create returns a new element named name whose children are parsed from content and whose attributes are attrs.
//
// Content is assigned before attributes, so an attribute in attrs always wins. Neither content nor attribute values
// are sanitized. Errors from doc or the element are returned as-is, and no element is returned with them.
func Create(doc *dom.Document, name string, attrs types.Attrs, content string) (*dom.Element, error) {
	el, err := doc.CreateElement(name)
	if err != nil {
		return nil, err
	}
	if err := el.SetInnerHTML(content); err != nil {
		return nil, err
	}
	for _, attr := range attrs {
		if err := el.SetAttribute(attr.Key, attr.Value); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// Build is Create for a Spec.
func Build(doc *dom.Document, spec types.Spec) (*dom.Element, error) {
	return Create(doc, spec.Name, spec.Attributes, spec.Content)
}

// Render returns the outer HTML of el.
func Render(el *dom.Element) (string, error) {
	return el.OuterHTML()
}
