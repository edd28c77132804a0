// Package dom is an HTML document object model host for Go programs.
//
// It provides the small set of primitives a browser document offers for building
// detached elements (element creation by tag name, innerHTML assignment, attribute
// assignment) on top of golang.org/x/net/html, following the browser's rules for
// HTML documents: tag and attribute names are ASCII-lowercased, names that are not
// valid XML names are rejected with an InvalidCharacterError, markup is parsed as a
// fragment in the context of the element, and void elements serialize without children.
package dom
