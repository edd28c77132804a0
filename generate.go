//go:generate env GOARCH=wasm GOOS=js go build -o assets/js/mkelem.wasm ./js/
//go:generate gzip -f -9 assets/js/mkelem.wasm
//go:generate sh -c "cp \"$GOROOT/lib/wasm/wasm_exec.js\" assets/js/ 2>/dev/null || cp \"$GOROOT/misc/wasm/wasm_exec.js\" assets/js/"
//go:generate go run ./assets
package main
