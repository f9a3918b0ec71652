package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	lists := &words.Lists{
		Length:     5,
		Dictionary: []string{"apple", "angle", "amble", "crane", "slate"},
		Alphabet:   solver.DefaultAlphabet(),
	}
	srv := New(store.NewMemoryStore(), lists, Config{
		Secret:       "test-secret",
		SessionTTL:   time.Hour,
		ClientOrigin: "http://localhost:5173",
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, token, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return res.StatusCode
}

func createSession(t *testing.T, ts *httptest.Server) newSessionRes {
	t.Helper()
	var created newSessionRes
	if code := do(t, http.MethodPost, ts.URL+"/sessions", "", "", &created); code != http.StatusCreated {
		t.Fatalf("POST /sessions = %d", code)
	}
	if created.SessionID == "" || created.Token == "" || created.Count != 5 || created.Length != 5 {
		t.Fatalf("created = %+v", created)
	}
	return created
}

func TestServer_GuessFlow(t *testing.T) {
	ts := newTestServer(t)
	created := createSession(t, ts)
	base := ts.URL + "/sessions/" + created.SessionID

	var v sessionView
	code := do(t, http.MethodPost, base+"/guess", created.Token, `{"guess":"APPLE","feedback":"g--gg"}`, &v)
	if code != http.StatusOK {
		t.Fatalf("guess = %d", code)
	}
	if want := []string{"angle", "amble"}; !reflect.DeepEqual(v.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", v.Candidates, want)
	}
	if v.Slots != "a??le" || v.Required != "ael" || v.Excluded != "p" || v.Guesses != 1 {
		t.Errorf("view = %+v", v)
	}

	var got sessionView
	if code := do(t, http.MethodGet, base+"?limit=1", created.Token, "", &got); code != http.StatusOK {
		t.Fatalf("GET session = %d", code)
	}
	if got.Count != 2 || len(got.Candidates) != 1 || !got.Truncated {
		t.Errorf("limited view = %+v", got)
	}
}

func TestServer_GuessErrors(t *testing.T) {
	ts := newTestServer(t)
	created := createSession(t, ts)
	base := ts.URL + "/sessions/" + created.SessionID

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"bad json", `{`, http.StatusBadRequest, "bad_json"},
		{"unknown guess", `{"guess":"zzzzz","feedback":"-----"}`, http.StatusBadRequest, "unknown_guess"},
		{"wrong length", `{"guess":"pear","feedback":"----"}`, http.StatusBadRequest, "invalid_word_length"},
		{"bad feedback", `{"guess":"crane","feedback":"gq---"}`, http.StatusBadRequest, "invalid_feedback"},
		{"short feedback", `{"guess":"crane","feedback":"g"}`, http.StatusBadRequest, "invalid_feedback"},
		{"marks list", `{"guess":"crane","marks":["absent","absent","absent","absent","absent"]}`, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res errorRes
			code := do(t, http.MethodPost, base+"/guess", created.Token, tt.body, &res)
			if code != tt.wantCode || res.Error != tt.wantErr {
				t.Errorf("got %d %q, want %d %q", code, res.Error, tt.wantCode, tt.wantErr)
			}
		})
	}
}

func TestServer_Auth(t *testing.T) {
	ts := newTestServer(t)
	a := createSession(t, ts)
	b := createSession(t, ts)

	if code := do(t, http.MethodGet, ts.URL+"/sessions/"+a.SessionID, "", "", nil); code != http.StatusUnauthorized {
		t.Errorf("no token = %d", code)
	}
	if code := do(t, http.MethodGet, ts.URL+"/sessions/"+a.SessionID, b.Token, "", nil); code != http.StatusUnauthorized {
		t.Errorf("other session's token = %d", code)
	}
	if code := do(t, http.MethodGet, ts.URL+"/sessions/"+a.SessionID, "garbage", "", nil); code != http.StatusUnauthorized {
		t.Errorf("garbage token = %d", code)
	}

	if code := do(t, http.MethodDelete, ts.URL+"/sessions/"+a.SessionID, a.Token, "", nil); code != http.StatusOK {
		t.Errorf("delete = %d", code)
	}
	if code := do(t, http.MethodGet, ts.URL+"/sessions/"+a.SessionID, a.Token, "", nil); code != http.StatusNotFound {
		t.Errorf("after delete = %d", code)
	}
}

func TestServer_Diagnostics(t *testing.T) {
	ts := newTestServer(t)
	var health map[string]bool
	if code := do(t, http.MethodGet, ts.URL+"/health", "", "", &health); code != http.StatusOK || !health["ok"] {
		t.Errorf("health = %d %v", code, health)
	}
	var stats map[string]int
	if code := do(t, http.MethodGet, ts.URL+"/debug/words", "", "", &stats); code != http.StatusOK {
		t.Fatalf("debug/words = %d", code)
	}
	if stats["words"] != 5 || stats["letters"] != 26 || stats["length"] != 5 {
		t.Errorf("stats = %v", stats)
	}
	var nf errorRes
	if code := do(t, http.MethodGet, ts.URL+"/nope", "", "", &nf); code != http.StatusNotFound || nf.Error != "not_found" {
		t.Errorf("404 = %d %+v", code, nf)
	}
}
