//go:build !embedassets

package main

import "net/http"

// embedded is replaced by the vfsgen bundle in builds tagged embedassets.
var embedded http.FileSystem
