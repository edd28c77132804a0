package main

import (
	"encoding/json"
	"net/http"

	bolt "go.etcd.io/bbolt"
)

// loadRequested loads the snippet named by the request's id parameter. When it returns nil, it has already written
// an error response.
func loadRequested(db *bolt.DB, rw http.ResponseWriter, req *http.Request) *Snippet {
	if err := req.ParseForm(); err != nil {
		http.Error(rw, msgBadRequest, http.StatusBadRequest)
		return nil
	}

	id := req.FormValue("id")
	if id == "" {
		http.Error(rw, "Sorry; I can't find a snippet without a snippet id.", http.StatusBadRequest)
		return nil
	}

	snippet, err := Load(db, id)
	if err != nil {
		log.Errorf("retrieving snippet %q from DB: %v", id, err)
		http.Error(rw, msgInternalServerError, http.StatusInternalServerError)
		return nil
	}
	if snippet == nil {
		http.Error(rw, "Sorry, I could not find that snippet.", http.StatusNotFound)
		return nil
	}
	return snippet
}

func SnippetPage(db *bolt.DB, hashes AssetHashes) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		snippet := loadRequested(db, rw, req)
		if snippet == nil {
			return
		}

		rw.Header().Set("Content-Type", "text/html")
		rw.WriteHeader(http.StatusOK)
		if err := TemplateRoot.ExecuteTemplate(rw, "snippet", map[string]interface{}{
			"Title":      "<" + snippet.Spec.Name + ">",
			"Snippet":    snippet,
			"Entrypoint": "Snippet",
			"JsHash":     hashes.Js,
			"CssHash":    hashes.Css,
		}); err != nil {
			log.Errorf("rendering snippet template: %v", err)
		}
	}
}

func GetSnippet(db *bolt.DB) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		snippet := loadRequested(db, rw, req)
		if snippet == nil {
			return
		}

		rw.Header().Set("content-type", "application/json")
		rw.WriteHeader(http.StatusOK)
		enc := json.NewEncoder(rw)
		if err := enc.Encode(snippet); err != nil {
			log.Errorf("encoding JSON for snippet %q: %s", snippet.Id, err)
		}
	}
}
