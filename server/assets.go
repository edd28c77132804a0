package main

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
)

type AssetHashes struct {
	Js  string
	Css string
}

// staticFS serves assets from dir, or from the compiled-in bundle when dir is empty and the binary was built with
// -tags embedassets.
func staticFS(dir string) http.FileSystem {
	if dir == "" && embedded != nil {
		return embedded
	}
	return http.Dir(dir)
}

// assetHash returns a short content hash of name (or its .gz sibling) for cache busting, or "" if neither exists.
func assetHash(fs http.FileSystem, name string) string {
	for _, candidate := range []string{name, name + ".gz"} {
		f, err := fs.Open(candidate)
		if err != nil {
			continue
		}
		h := sha256.New()
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			log.Warningf("hashing asset %q: %v", candidate, err)
			return ""
		}
		return fmt.Sprintf("%x", h.Sum(nil))[:12]
	}
	log.Debugf("no asset %q to hash", name)
	return ""
}

func hashAssets(fs http.FileSystem) AssetHashes {
	return AssetHashes{
		Js:  assetHash(fs, "/js/mkelem.wasm"),
		Css: assetHash(fs, "/css/mkelem.css"),
	}
}
