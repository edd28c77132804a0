package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/lpar/gzipped"
	log2 "github.com/pdbogen/mkelem/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	bolt "go.etcd.io/bbolt"
)

var log = log2.Log

const (
	msgBadRequest          = "hmm, that request didn't look right. Go back and try again, perhaps?"
	msgInternalServerError = "sorry! something went wrong on our end. please try again later."
)

// Routes wires every controller. Pages and API responses are gzipped on the fly; websockets, pre-compressed assets,
// and metrics are served as-is.
func Routes(db *bolt.DB, m *Metrics, assets http.FileSystem, gatherer prometheus.Gatherer, feeds *sync.WaitGroup) http.Handler {
	hashes := hashAssets(assets)

	pages := http.NewServeMux()
	pages.HandleFunc("/", IndexController(db, hashes))
	pages.HandleFunc("/create", Create(db, m))
	pages.HandleFunc("/snippet", SnippetPage(db, hashes))
	pages.HandleFunc("/json", GetSnippet(db))
	pages.HandleFunc("/render", Render(m))

	mux := http.NewServeMux()
	mux.Handle("/", gziphandler.GzipHandler(pages))
	mux.HandleFunc("/ws", RenderSession(m))
	mux.HandleFunc("/feed", Feed(db, feeds))
	mux.Handle("/assets/", http.StripPrefix("/assets", gzipped.FileServer(assets)))
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func main() {
	listen := flag.String("listen", ":8080", "address on which to serve HTTP")
	dbPath := flag.String("db", "mkelem.db", "path to the bolt database of saved snippets")
	assetDir := flag.String("assets", "assets", "directory of static assets; empty to use the bundle compiled in with -tags embedassets")
	loglevel := flag.String("loglevel", "info", "set to DEBUG for more logging, or INFO or ERROR for less")
	flag.Parse()

	if err := log2.SetLevel(*loglevel); err != nil {
		log.Fatalf("could not parse log level %q: %s", *loglevel, err)
	}

	db, err := bolt.Open(*dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Fatalf("opening database %q: %s", *dbPath, err)
	}

	feeds := &sync.WaitGroup{}
	srv := &http.Server{
		Addr:    *listen,
		Handler: Routes(db, NewMetrics(prometheus.DefaultRegisterer), staticFS(*assetDir), prometheus.DefaultGatherer, feeds),
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		log.Infof("got %s; shutting down", <-sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("shutting down HTTP server: %s", err)
		}
		UnsubscribeAll()
	}()

	log.Infof("listening on %s", *listen)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-stopped
	feeds.Wait()

	if err := db.Close(); err != nil {
		log.Errorf("closing database: %s", err)
	}
}
