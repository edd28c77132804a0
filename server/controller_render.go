package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdbogen/mkelem/types"
)

// maxSpecBytes bounds a JSON spec in a request body or websocket message.
const maxSpecBytes = 1 << 20

func Render(m *Metrics) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(rw, "Sorry, specs are rendered with a POST.", http.StatusMethodNotAllowed)
			return
		}

		var spec types.Spec
		if err := json.NewDecoder(http.MaxBytesReader(rw, req.Body, maxSpecBytes)).Decode(&spec); err != nil {
			http.Error(rw, fmt.Sprintf("Sorry, that spec could not be read: %v", err), http.StatusBadRequest)
			return
		}

		markup, err := render(m, spec)
		if err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}

		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		rw.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(rw, markup); err != nil {
			log.Errorf("writing rendered <%s>: %v", spec.Name, err)
		}
	}
}
