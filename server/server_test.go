package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/pdbogen/mkelem/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	bolt "go.etcd.io/bbolt"
)

type testServer struct {
	*httptest.Server
	db      *bolt.DB
	metrics *Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	db, err := bolt.Open(filepath.Join(dir, "test.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	assets := filepath.Join(dir, "assets")
	if err := os.MkdirAll(filepath.Join(assets, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(assets, "css", "mkelem.css"), []byte("body { margin: 0; }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ts := httptest.NewServer(Routes(db, m, http.Dir(assets), reg, &sync.WaitGroup{}))
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})
	return &testServer{Server: ts, db: db, metrics: m}
}

func noRedirects(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/render", "application/json",
		strings.NewReader(`{"Name":"span","Attributes":{"id":"x"},"Content":"hello"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.StatusCode, http.StatusOK; got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
	if got, want := readBody(t, res), `<span id="x">hello</span>`; got != want {
		t.Errorf("got body %q, want %q", got, want)
	}
	if got := testutil.ToFloat64(ts.metrics.Created.WithLabelValues("span")); got != 1 {
		t.Errorf("got %v spans created, want 1", got)
	}

	res, err = http.Post(ts.URL+"/render", "application/json", strings.NewReader(`{"Name":"span","Attributes":{"a b":"x"}}`))
	if err != nil {
		t.Fatal(err)
	}
	body := readBody(t, res)
	if got, want := res.StatusCode, http.StatusBadRequest; got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
	if !strings.Contains(body, "InvalidCharacterError") {
		t.Errorf("body %q does not name the host error", body)
	}
	if got := testutil.ToFloat64(ts.metrics.Errors.WithLabelValues("create")); got != 1 {
		t.Errorf("got %v create errors, want 1", got)
	}

	res, err = http.Get(ts.URL + "/render")
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, res)
	if got, want := res.StatusCode, http.StatusMethodNotAllowed; got != want {
		t.Errorf("got status %d for GET, want %d", got, want)
	}
}

func TestCreateAndView(t *testing.T) {
	ts := newTestServer(t)
	client := &http.Client{CheckRedirect: noRedirects}

	res, err := client.PostForm(ts.URL+"/create", url.Values{
		"name":    {"a"},
		"attrs":   {"href=https://example.com\r\n\r\ntarget=_blank\r\n"},
		"content": {"link"},
	})
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, res)
	if got, want := res.StatusCode, http.StatusFound; got != want {
		t.Fatalf("got status %d, want %d", got, want)
	}
	loc, err := res.Location()
	if err != nil {
		t.Fatal(err)
	}
	id := loc.Query().Get("id")
	if loc.Path != "/snippet" || id == "" {
		t.Fatalf("got redirect to %s, want /snippet?id=...", loc)
	}
	var history *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "history" {
			history = c
		}
	}
	if history == nil || history.Value != id {
		t.Errorf("got history cookie %v, want value %q", history, id)
	}

	res, err = http.Get(ts.URL + "/json?id=" + id)
	if err != nil {
		t.Fatal(err)
	}
	var snippet types.Snippet
	if err := json.Unmarshal([]byte(readBody(t, res)), &snippet); err != nil {
		t.Fatal(err)
	}
	wantSpec := types.Spec{
		Name:       "a",
		Attributes: types.Attrs{{Key: "href", Value: "https://example.com"}, {Key: "target", Value: "_blank"}},
		Content:    "link",
	}
	if diff := cmp.Diff(wantSpec, snippet.Spec); diff != "" {
		t.Errorf("stored spec mismatch (-want +got):\n%s", diff)
	}
	if got, want := snippet.Markup, `<a href="https://example.com" target="_blank">link</a>`; got != want {
		t.Errorf("got markup %q, want %q", got, want)
	}

	res, err = http.Get(ts.URL + "/snippet?id=" + id)
	if err != nil {
		t.Fatal(err)
	}
	page := readBody(t, res)
	if want := `&lt;a href=&#34;https://example.com&#34; target=&#34;_blank&#34;&gt;link&lt;/a&gt;`; !strings.Contains(page, want) {
		t.Errorf("snippet page does not show escaped markup %q:\n%s", want, page)
	}

	req, err := http.NewRequest("GET", ts.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: "history", Value: "gone," + id})
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if index := readBody(t, res); !strings.Contains(index, "/snippet?id="+id) {
		t.Errorf("index does not link to snippet %q", id)
	}
	for _, c := range res.Cookies() {
		if c.Name == "history" && c.Value != id {
			t.Errorf("got history cookie %q after index, want %q", c.Value, id)
		}
	}
}

func TestCreateErrors(t *testing.T) {
	ts := newTestServer(t)
	client := &http.Client{CheckRedirect: noRedirects}

	for _, form := range []url.Values{
		{"name": {""}},
		{"name": {"bad name"}},
		{"name": {"div"}, "attrs": {"=x"}},
	} {
		res, err := client.PostForm(ts.URL+"/create", form)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		if got, want := res.StatusCode, http.StatusBadRequest; got != want {
			t.Errorf("POST %v: got status %d, want %d", form, got, want)
		}
	}

	for _, path := range []string{"/json?id=missing", "/snippet?id=missing", "/nothing-here"} {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		if got, want := res.StatusCode, http.StatusNotFound; got != want {
			t.Errorf("GET %s: got status %d, want %d", path, got, want)
		}
	}
}

func wsURL(ts *testServer, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestRenderSession(t *testing.T) {
	ts := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for _, tc := range []struct {
		spec       types.Spec
		wantMarkup string
		wantError  bool
	}{
		{spec: types.Spec{Name: "div"}, wantMarkup: "<div></div>"},
		{spec: types.Spec{Name: "b", Content: "<i>x</i>"}, wantMarkup: "<b><i>x</i></b>"},
		{spec: types.Spec{Name: "1"}, wantError: true},
	} {
		if err := conn.WriteJSON(tc.spec); err != nil {
			t.Fatal(err)
		}
		var msg types.RenderMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		if msg.Markup != tc.wantMarkup {
			t.Errorf("%+v: got markup %q, want %q", tc.spec, msg.Markup, tc.wantMarkup)
		}
		if got := msg.Error != ""; got != tc.wantError {
			t.Errorf("%+v: got error %q, want error: %v", tc.spec, msg.Error, tc.wantError)
		}
	}
}

func TestFeed(t *testing.T) {
	ts := newTestServer(t)

	old, err := NewSnippet(types.Spec{Name: "p"}, "<p></p>")
	if err != nil {
		t.Fatal(err)
	}
	if err := old.Save(ts.db); err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/feed"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg types.RenderMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.SnippetId != old.Id {
		t.Errorf("got backfill snippet %q, want %q", msg.SnippetId, old.Id)
	}

	client := &http.Client{CheckRedirect: noRedirects}
	res, err := client.PostForm(ts.URL+"/create", url.Values{"name": {"em"}, "content": {"new"}})
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, res)

	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if got, want := msg.Markup, "<em>new</em>"; got != want {
		t.Errorf("got streamed markup %q, want %q", got, want)
	}
}

func TestAssets(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/assets/css/mkelem.css")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := readBody(t, res), "body { margin: 0; }\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	res, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	if body := readBody(t, res); res.StatusCode != http.StatusOK {
		t.Errorf("got metrics status %d: %s", res.StatusCode, body)
	}
}

func TestHashAssets(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "js"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "js", "mkelem.wasm.gz"), []byte("wasm"), 0644); err != nil {
		t.Fatal(err)
	}
	hashes := hashAssets(http.Dir(dir))
	if len(hashes.Js) != 12 {
		t.Errorf("got Js hash %q, want 12 hex digits from the .gz sibling", hashes.Js)
	}
	if hashes.Css != "" {
		t.Errorf("got Css hash %q for a missing file, want empty", hashes.Css)
	}
}

func TestParseAttrLines(t *testing.T) {
	got := parseAttrLines("id=x\r\n\n  \nclass=a b\nid=y\ndisabled")
	want := types.Attrs{{Key: "id", Value: "y"}, {Key: "class", Value: "a b"}, {Key: "disabled"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTagLabel(t *testing.T) {
	for in, want := range map[string]string{
		"div":       "div",
		"IMG":       "img",
		"my-widget": "other",
		// KELVIN SIGN lowercases to k under Unicode rules, but the element would be named "lin\u212a".
		"LIN\u212A": "other",
	} {
		if got := tagLabel(in); got != want {
			t.Errorf("tagLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStore(t *testing.T) {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "store.db"), 0600, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if s, err := Load(db, "nothing"); s != nil || err != nil {
		t.Errorf("got Load on empty DB = %v, %v, want nil, nil", s, err)
	}

	var saved []*Snippet
	for _, name := range []string{"a", "b", "c"} {
		s, err := NewSnippet(types.Spec{Name: name}, "<"+name+"></"+name+">")
		if err != nil {
			t.Fatal(err)
		}
		s.Created = time.Date(2020, 1, len(saved)+1, 0, 0, 0, 0, time.UTC)
		if err := s.Save(db); err != nil {
			t.Fatal(err)
		}
		saved = append(saved, s)
	}

	many, err := LoadMany(db, []string{saved[2].Id, "missing", "", saved[0].Id})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range many {
		names = append(names, s.Spec.Name)
	}
	if diff := cmp.Diff([]string{"c", "a"}, names); diff != "" {
		t.Errorf("LoadMany mismatch (-want +got):\n%s", diff)
	}

	since, err := Since(db, saved[0].Created)
	if err != nil {
		t.Fatal(err)
	}
	names = nil
	for _, s := range since {
		names = append(names, s.Spec.Name)
	}
	if diff := cmp.Diff([]string{"b", "c"}, names); diff != "" {
		t.Errorf("Since mismatch (-want +got):\n%s", diff)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snippetsBucket).Put([]byte("junk"), []byte("{"))
	}); err != nil {
		t.Fatal(err)
	}
	if s, err := Load(db, "junk"); s != nil || err != nil {
		t.Errorf("got Load of unparseable snippet = %v, %v, want nil, nil", s, err)
	}
}

func TestPubSub(t *testing.T) {
	sub, ok := Subscribe(nil)
	if !ok {
		t.Fatal("Subscribe refused before shutdown")
	}
	for i := 0; i < subscriptionBuffer+5; i++ {
		Publish(&types.Snippet{Id: "x"})
	}
	if got := len(sub.Chan); got != subscriptionBuffer {
		t.Errorf("got %d queued, want %d", got, subscriptionBuffer)
	}
	sub.Unsubscribe()
	sub.Unsubscribe()
	Publish(&types.Snippet{Id: "after"})

	n := 0
	for range sub.Chan {
		n++
	}
	if n != subscriptionBuffer {
		t.Errorf("drained %d, want %d", n, subscriptionBuffer)
	}
}


func TestFeedAfterShutdown(t *testing.T) {
	t.Cleanup(func() {
		SubscriptionsMu.Lock()
		shuttingDown = false
		SubscriptionsMu.Unlock()
	})

	feeds := &sync.WaitGroup{}
	sub, ok := Subscribe(feeds)
	if !ok {
		t.Fatal("Subscribe refused before shutdown")
	}
	UnsubscribeAll()
	if _, open := <-sub.Chan; open {
		t.Error("subscription channel still open after UnsubscribeAll")
	}
	feeds.Done()

	if _, ok := Subscribe(feeds); ok {
		t.Error("Subscribe accepted after UnsubscribeAll")
	}

	rec := httptest.NewRecorder()
	Feed(nil, feeds)(rec, httptest.NewRequest("GET", "/feed", nil))
	if got, want := rec.Code, http.StatusServiceUnavailable; got != want {
		t.Errorf("got status %d, want %d", got, want)
	}

	waited := make(chan struct{})
	go func() {
		feeds.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Error("feeds.Wait blocked after shutdown")
	}
}
