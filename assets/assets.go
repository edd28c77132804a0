package main

import (
	"net/http"

	log2 "github.com/pdbogen/mkelem/log"
	"github.com/shurcooL/vfsgen"
)

var fs = http.Dir("assets")

// Bundles assets/ into the server binary for builds tagged embedassets. Run from the repository root.
func main() {
	err := vfsgen.Generate(fs, vfsgen.Options{
		Filename:        "server/assets_vfsdata.go",
		PackageName:     "main",
		BuildTags:       "embedassets",
		VariableName:    "embedded",
		VariableComment: "embedded is the contents of assets/, bundled by go generate.",
	})
	if err != nil {
		log2.Log.Fatalf("generating asset bundle: %s", err)
	}
}
