//go:build js && wasm

package main

import (
	"net/url"

	"github.com/pdbogen/mkelem/types"
)

// Snippet rebuilds the page's snippet with the browser's own DOM and puts it in #preview.
func Snippet() {
	preview := Document().Call("getElementById", "preview")
	if preview.IsNull() {
		panic("could not find preview?!")
	}

	id := preview.Get("dataset").Get("id").String()
	var snippet types.Snippet
	if err := fetchJSON("/json?id="+url.QueryEscape(id), &snippet); err != nil {
		preview.Call("appendChild", CreateElementText("pre", err.Error()))
		return
	}

	spec := snippet.Spec
	preview.Call("appendChild", CreateElement(spec.Name, spec.Attributes, spec.Content))
}
