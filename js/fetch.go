//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"syscall/js"
)

func Location() *url.URL {
	href := js.Global().Get("location").Get("href").String()
	u, err := url.Parse(href)
	if err != nil {
		panic("parsing URL " + href + ": " + err.Error())
	}
	return u
}

func Param(name string) string {
	return Location().Query().Get(name)
}

// WsUrl is the websocket URL for path on the page's own host.
func WsUrl(path string, query url.Values) *url.URL {
	u := Location()
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = path
	u.RawQuery = query.Encode()
	u.Fragment = ""
	return u
}

// await blocks until promise settles. It must not be called from a JS callback.
func await(promise js.Value) (js.Value, error) {
	type result struct {
		value js.Value
		err   error
	}
	ch := make(chan result, 1)
	then := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		ch <- result{value: args[0]}
		return nil
	})
	defer then.Release()
	catch := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		ch <- result{err: js.Error{Value: args[0]}}
		return nil
	})
	defer catch.Release()

	promise.Call("then", then, catch)
	r := <-ch
	return r.value, r.err
}

func fetchJSON(u string, v interface{}) error {
	res, err := await(js.Global().Call("fetch", u))
	if err != nil {
		return fmt.Errorf("fetching %s: %w", u, err)
	}
	if !res.Get("ok").Bool() {
		return fmt.Errorf("fetching %s: %d %s", u, res.Get("status").Int(), res.Get("statusText").String())
	}
	text, err := await(res.Call("text"))
	if err != nil {
		return fmt.Errorf("reading %s: %w", u, err)
	}
	if err := json.Unmarshal([]byte(text.String()), v); err != nil {
		return fmt.Errorf("parsing %s: %w", u, err)
	}
	return nil
}
