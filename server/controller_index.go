package main

import (
	"net/http"
	"strings"

	bolt "go.etcd.io/bbolt"
)

// historyLimit is how many snippet ids the history cookie remembers.
const historyLimit = 20

func historyIds(req *http.Request) []string {
	history, _ := req.Cookie("history")
	if history == nil || history.Value == "" {
		return nil
	}
	return strings.Split(history.Value, ",")
}

func setHistory(rw http.ResponseWriter, ids []string) {
	if len(ids) > historyLimit {
		ids = ids[len(ids)-historyLimit:]
	}
	http.SetCookie(rw, &http.Cookie{
		Name:  "history",
		Value: strings.Join(ids, ","),
		Path:  "/",
	})
}

func IndexController(db *bolt.DB, hashes AssetHashes) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(rw, req)
			return
		}

		snippets, err := LoadMany(db, historyIds(req))
		if err != nil {
			log.Errorf("loading snippets: %s", err)
		}

		var ids []string
		for _, snippet := range snippets {
			ids = append(ids, snippet.Id)
		}
		setHistory(rw, ids)

		// Newest first.
		for i := 0; i < len(snippets)/2; i++ {
			snippets[i], snippets[len(snippets)-1-i] = snippets[len(snippets)-1-i], snippets[i]
		}

		rw.Header().Add("content-type", "text/html")
		rw.WriteHeader(http.StatusOK)
		if err := TemplateRoot.ExecuteTemplate(rw, "index", map[string]interface{}{
			"Snippets":   snippets,
			"Entrypoint": "Feed",
			"JsHash":     hashes.Js,
			"CssHash":    hashes.Css,
		}); err != nil {
			log.Errorf("writing index template: %s", err)
		}
	}
}
