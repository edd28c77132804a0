package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pdbogen/mkelem/types"
	bolt "go.etcd.io/bbolt"
)

// parseAttrLines reads one key=value attribute per line, skipping blank lines.
func parseAttrLines(text string) types.Attrs {
	var attrs types.Attrs
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		attr := types.ParseAttr(line)
		attrs.Set(attr.Key, attr.Value)
	}
	return attrs
}

func Create(db *bolt.DB, m *Metrics) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(rw, "Sorry, elements are created with a POST.", http.StatusMethodNotAllowed)
			return
		}

		if err := req.ParseForm(); err != nil {
			http.Error(rw, msgBadRequest, http.StatusBadRequest)
			return
		}

		spec := types.Spec{
			Name:       req.FormValue("name"),
			Attributes: parseAttrLines(req.FormValue("attrs")),
			Content:    req.FormValue("content"),
		}
		if spec.Name == "" {
			http.Error(rw, "Sorry, a tag name is required. Go back and try again?", http.StatusBadRequest)
			return
		}

		markup, err := render(m, spec)
		if err != nil {
			http.Error(rw, fmt.Sprintf("Sorry, that element could not be built: %v", err), http.StatusBadRequest)
			return
		}

		snippet, err := NewSnippet(spec, markup)
		if err != nil {
			log.Error(err)
			http.Error(rw, msgInternalServerError, http.StatusInternalServerError)
			return
		}
		if err := snippet.Save(db); err != nil {
			log.Errorf("saving snippet %q to DB: %v", snippet.Id, err)
			http.Error(rw, msgInternalServerError, http.StatusInternalServerError)
			return
		}
		Publish(&snippet.Snippet)
		log.Infof("created snippet %q <%s>", snippet.Id, spec.Name)

		setHistory(rw, append(historyIds(req), snippet.Id))
		http.Redirect(rw, req, "/snippet?id="+snippet.Id, http.StatusFound)
	}
}
