//go:build js && wasm

package main

import "syscall/js"

func main() {
	println("mkelem starting")
	exportUtil()

	switch js.Global().Get("Entrypoint").String() {
	case "Snippet":
		Snippet()
	case "Feed":
		Feed()
	}

	select {}
}
