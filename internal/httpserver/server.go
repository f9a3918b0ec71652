// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: POST /sessions creates a solver session and returns a
//     signed token; the /sessions/{id} routes require that token.
//
// Notes:
//   - Sessions live in the in-memory store; each is locked while a request uses it.
//   - Tokens are HS256 JWTs whose "sid" claim must equal the {id} in the URL.
//   - Validation failures come back as 400 with a stable error code.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Config holds the server settings read from the environment.
type Config struct {
	Secret       string        // JWT_SECRET
	SessionTTL   time.Duration // SESSION_TTL_HOURS
	ClientOrigin string        // CLIENT_ORIGIN
}

// ConfigFromEnv reads JWT_SECRET, SESSION_TTL_HOURS and CLIENT_ORIGIN.
func ConfigFromEnv() Config {
	hours := 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return Config{
		Secret:       getEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:   time.Duration(hours) * time.Hour,
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// Server bundles router, session store and the word lists sessions are seeded from.
type Server struct {
	r     *chi.Mux
	store store.Store
	lists *words.Lists
	cfg   Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lists *words.Lists, cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, lists: lists, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /sessions","GET /sessions/{id}","POST /sessions/{id}/guess","DELETE /sessions/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		n, letters := s.lists.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words":    n,
			"letters":  letters,
			"length":   s.lists.Length,
			"sessions": s.store.Len(),
		})
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Post("/guess", s.handleGuess)
			r.Delete("/", s.handleDeleteSession)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SweepEvery drops idle sessions every interval until ctx is done.
func (s *Server) SweepEvery(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.cfg.SessionTTL); n > 0 {
				log.Info().Int("dropped", n).Msg("swept idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request with status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ----------------------------- sessions ------------------------------------

// newSessionRes is returned by POST /sessions.
type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Length    int       `json:"length"`
	Count     int       `json:"count"`
}

// handleNewSession seeds a session from the loaded word lists and returns its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lists.NewSession()
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "session_failed", "")
		return
	}
	e, err := s.store.Create(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	tok, exp, err := s.signSessionToken(e.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	s.setSessionCookie(w, e.ID, tok, exp)
	log.Info().Str("sessionId", e.ID).Int("count", sess.Count()).Msg("session created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: e.ID,
		Token:     tok,
		ExpiresAt: exp,
		Length:    sess.Len(),
		Count:     sess.Count(),
	})
}

// sessionView is the JSON shape of a session's knowledge and candidates.
type sessionView struct {
	SessionID  string   `json:"sessionId"`
	Length     int      `json:"length"`
	Guesses    int      `json:"guesses"`
	Slots      string   `json:"slots"` // confirmed letters, '?' for open positions
	Open       []int    `json:"open"`
	Required   string   `json:"required"`
	Excluded   string   `json:"excluded"`
	Solved     bool     `json:"solved"`
	Count      int      `json:"count"`
	Candidates []string `json:"candidates"`
	Truncated  bool     `json:"truncated,omitempty"`
}

const defaultCandidateLimit = 100

func viewOf(id string, sess *solver.Session, limit int) sessionView {
	st := sess.State()
	res := sess.Result()
	var slots strings.Builder
	for _, sl := range st.Slots() {
		slots.WriteString(sl.String())
	}
	v := sessionView{
		SessionID:  id,
		Length:     sess.Len(),
		Guesses:    res.Guesses,
		Slots:      slots.String(),
		Open:       res.Open,
		Required:   string(st.Required()),
		Excluded:   string(st.Excluded()),
		Solved:     res.Solved,
		Count:      res.Count,
		Candidates: res.Candidates,
	}
	if v.Candidates == nil {
		v.Candidates = []string{}
	}
	if limit >= 0 && len(v.Candidates) > limit {
		v.Candidates = v.Candidates[:limit]
		v.Truncated = true
	}
	return v
}

// candidateLimit reads ?limit=; a negative value means no limit.
func candidateLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultCandidateLimit
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	var v sessionView
	_ = e.Do(func(sess *solver.Session) error {
		v = viewOf(e.ID, sess, candidateLimit(r))
		return nil
	})
	_ = json.NewEncoder(w).Encode(v)
}

// guessReq is the payload for POST /sessions/{id}/guess.
// Feedback is either a compact string ("g--yg") or a list of marks.
type guessReq struct {
	Guess    string          `json:"guess"`
	Feedback string          `json:"feedback"`
	Marks    []feedback.Mark `json:"marks"`
}

// handleGuess applies one guess and its feedback to the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))
	marks := req.Marks
	if req.Feedback != "" {
		var err error
		if marks, err = feedback.Parse(req.Feedback); err != nil {
			writeError(w, http.StatusBadRequest, solver.KindInvalidFeedback.String(), err.Error())
			return
		}
	}

	var v sessionView
	err := e.Do(func(sess *solver.Session) error {
		if _, err := sess.Guess(guess, marks); err != nil {
			return err
		}
		v = viewOf(e.ID, sess, candidateLimit(r))
		return nil
	})
	if err != nil {
		if kind, ok := solver.KindOf(err); ok {
			writeError(w, http.StatusBadRequest, kind.String(), err.Error())
			return
		}
		log.Error().Err(err).Str("sessionId", e.ID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed", "")
		return
	}
	log.Info().Str("sessionId", e.ID).Str("guess", guess).Int("count", v.Count).Msg("guess applied")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	if err := s.store.Delete(r.Context(), e.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed", "")
		return
	}
	s.clearSessionCookie(w, e.ID)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------- errors ------------------------------------

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: code, Detail: detail})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ctxEntryKey is the context key type for the resolved store entry.
type ctxEntryKey struct{}

func entryFrom(r *http.Request) *store.Entry {
	e, _ := r.Context().Value(ctxEntryKey{}).(*store.Entry)
	return e
}
