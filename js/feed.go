//go:build js && wasm

package main

import (
	"encoding/json"
	"net/url"
	"sync"
	"syscall/js"
	"time"

	"github.com/pdbogen/mkelem/types"
)

// feedBuffer is how many messages may wait between the socket callback and the list.
const feedBuffer = 64

// Feed lists snippets as the server announces them, newest first, reconnecting whenever the socket drops.
func Feed() {
	list := Document().Call("getElementById", "feed")
	if list.IsNull() {
		panic("could not find feed?!")
	}

	since := time.Time{}
	for {
		query := url.Values{}
		if !since.IsZero() {
			query.Set("since", since.Format(time.RFC3339Nano))
		}

		messages := make(chan types.RenderMessage, feedBuffer)
		closed := make(chan struct{})
		var closeOnce sync.Once
		done := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			closeOnce.Do(func() { close(closed) })
			return nil
		})
		onMessage := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if len(args) < 1 {
				println("got message event with no arguments")
				return nil
			}
			var msg types.RenderMessage
			msgStr := args[0].Get("data").String()
			if err := json.Unmarshal([]byte(msgStr), &msg); err != nil {
				println("could not unmarshal message: " + msgStr)
				return nil
			}
			select {
			case messages <- msg:
			default:
				println("feed is backed up; dropping snippet " + msg.SnippetId)
			}
			return nil
		})

		ws := js.Global().Get("WebSocket").New(WsUrl("/feed", query).String())
		ws.Call("addEventListener", "message", onMessage)
		ws.Call("addEventListener", "close", done)
		ws.Call("addEventListener", "error", done)

	read:
		for {
			select {
			case <-closed:
				break read
			case msg := <-messages:
				if !msg.Time.After(since) {
					continue
				}
				since = msg.Time

				a := CreateElementText("a", msg.Markup)
				a.Call("setAttribute", "href", "/snippet?id="+url.QueryEscape(msg.SnippetId))
				li := CreateElement("li", types.Attrs{{Key: "data-id", Value: msg.SnippetId}}, "")
				li.Call("appendChild", a)
				list.Call("insertBefore", li, list.Get("firstChild"))
			}
		}

		ws.Call("removeEventListener", "message", onMessage)
		ws.Call("removeEventListener", "close", done)
		ws.Call("removeEventListener", "error", done)
		ws.Call("close")
		onMessage.Release()
		done.Release()
		time.Sleep(time.Second)
	}
}
