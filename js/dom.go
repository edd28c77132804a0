//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/pdbogen/mkelem/types"
)

func Document() js.Value {
	return js.Global().Get("document")
}

// CreateElement builds a detached element in the browser's document: content is assigned to innerHTML first, then
// each attribute is set, so attrs win. Exceptions thrown by the browser panic as js.Error.
func CreateElement(name string, attrs types.Attrs, content string) js.Value {
	e := Document().Call("createElement", name)
	e.Set("innerHTML", content)
	for _, attr := range attrs {
		e.Call("setAttribute", attr.Key, attr.Value)
	}
	return e
}

func CreateElementText(tag, text string) js.Value {
	e := CreateElement(tag, nil, "")
	e.Set("textContent", text)
	return e
}

// attrsFromObject reads an object's own enumerable string properties as attributes.
func attrsFromObject(obj js.Value) types.Attrs {
	if obj.Type() != js.TypeObject {
		return nil
	}
	var attrs types.Attrs
	keys := js.Global().Get("Object").Call("keys", obj)
	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		attrs.Set(key, js.Global().Call("String", obj.Get(key)).String())
	}
	return attrs
}

func stringArg(args []js.Value, i int) string {
	if i >= len(args) || args[i].IsUndefined() || args[i].IsNull() {
		return ""
	}
	return args[i].String()
}

// exportUtil installs util.createElement(name, attrs, innerHTML) for page scripts. When the browser rejects the
// name or an attribute, the thrown exception object is returned instead of an element.
func exportUtil() {
	util := js.Global().Get("Object").New()
	util.Set("createElement", js.FuncOf(func(_ js.Value, args []js.Value) (ret interface{}) {
		defer func() {
			if r := recover(); r != nil {
				jsErr, ok := r.(js.Error)
				if !ok {
					panic(r)
				}
				ret = jsErr.Value
			}
		}()
		var attrs types.Attrs
		if len(args) > 1 {
			attrs = attrsFromObject(args[1])
		}
		return CreateElement(stringArg(args, 0), attrs, stringArg(args, 2))
	}))
	js.Global().Set("util", util)
}
