package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pdbogen/mkelem/types"
	bolt "go.etcd.io/bbolt"
)

// sessionIdle is how long a render session may sit without a message before it is closed.
const sessionIdle = 5 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RenderSession upgrades the request to a websocket on which every spec received is answered with a RenderMessage.
func RenderSession(m *Metrics) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(rw, req, nil)
		if err != nil {
			log.Errorf("upgrading HTTP request to websocket: %s", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxSpecBytes)

		for {
			conn.SetReadDeadline(time.Now().Add(sessionIdle))
			var spec types.Spec
			if err := conn.ReadJSON(&spec); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debugf("render session ended: %v", err)
				}
				return
			}

			msg := types.RenderMessage{Time: time.Now().UTC()}
			if markup, err := render(m, spec); err != nil {
				msg.Error = err.Error()
			} else {
				msg.Markup = markup
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Errorf("writing to websocket: %s", err)
				return
			}
		}
	}
}

// Feed upgrades the request to a websocket over which it sends every snippet created after `since`: first those
// already stored, then new ones as they are created.
func Feed(db *bolt.DB, feeds *sync.WaitGroup) func(rw http.ResponseWriter, req *http.Request) {
	return func(rw http.ResponseWriter, req *http.Request) {
		stream, ok := Subscribe(feeds)
		if !ok {
			http.Error(rw, "server shutting down", http.StatusServiceUnavailable)
			return
		}
		defer feeds.Done()
		defer stream.Unsubscribe()

		// discard the error, we'll just get zero time instead.
		since, _ := time.Parse(time.RFC3339Nano, req.FormValue("since"))

		conn, err := upgrader.Upgrade(rw, req, nil)
		if err != nil {
			log.Errorf("upgrading HTTP request to websocket: %s", err)
			return
		}
		defer conn.Close()

		backfill, err := Since(db, since)
		if err != nil {
			log.Errorf("loading snippets since %s: %v", since, err)
			return
		}
		last := since
		for _, snippet := range backfill {
			log.Debugf("sending backfill snippet %q", snippet.Id)
			if err := conn.WriteJSON(feedMessage(&snippet.Snippet)); err != nil {
				log.Errorf("writing to websocket: %s", err)
				return
			}
			last = snippet.Created
		}

		// The client never sends anything; reading notices when it goes away.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				return
			case snippet, ok := <-stream.Chan:
				if !ok {
					conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
					return
				}
				if !snippet.Created.After(last) {
					continue
				}
				log.Debugf("sending snippet %q", snippet.Id)
				if err := conn.WriteJSON(feedMessage(snippet)); err != nil {
					log.Errorf("writing to websocket: %s", err)
					return
				}
			}
		}
	}
}

func feedMessage(s *types.Snippet) types.RenderMessage {
	return types.RenderMessage{
		Time:      s.Created,
		SnippetId: s.Id,
		Markup:    s.Markup,
	}
}
