/*
Package web serves the dictionary over HTTP with a JSON API.

Each visitor gets a session cookie. The session selects one of the
listings in the data directory and records the words the visitor removed.
Every query builds a fresh trie from the listing and replays the removals
onto it, so the files on disk are never modified and sessions never see
each other's changes.

	GET  /api/words                 all words, sorted
	GET  /api/words/{word}          check a word (404 when absent)
	POST /api/words/{word}/remove   remove a word for this session
	GET  /api/prefix/{prefix}       ten most frequent completions
	GET  /api/suffix/{suffix}       words ending in suffix
	GET  /api/suggest/{word}        spelling suggestions
	GET  /api/dictionaries          available listings
	PUT  /api/dictionary/{name}     switch listing (clears removals)
	POST /api/reset                 forget the session state
	GET  /health
*/
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

type ctxKey struct{}

// Server is the HTTP front end.
type Server struct {
	loader      *dictionary.Loader
	sessions    *session.Store
	defaultDict string
	cookieName  string
	addr        string
	router      *mux.Router
	logger      *log.Logger
}

// NewServer wires the routes. cfg supplies the listen address, the cookie
// name and the dictionary new sessions start on.
func NewServer(loader *dictionary.Loader, sessions *session.Store, cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		loader:      loader,
		sessions:    sessions,
		defaultDict: cfg.Dict.Default,
		cookieName:  cfg.Web.CookieName,
		addr:        cfg.Web.Addr,
		router:      mux.NewRouter(),
		logger:      logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.withSession)
	api.HandleFunc("/words", s.handleListWords).Methods(http.MethodGet)
	api.HandleFunc("/words/{word}", s.handleCheckWord).Methods(http.MethodGet)
	api.HandleFunc("/words/{word}/remove", s.handleRemoveWord).Methods(http.MethodPost)
	api.HandleFunc("/prefix/{prefix}", s.handlePrefix).Methods(http.MethodGet)
	api.HandleFunc("/suffix/{suffix}", s.handleSuffix).Methods(http.MethodGet)
	api.HandleFunc("/suggest/{word}", s.handleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/dictionaries", s.handleDictionaries).Methods(http.MethodGet)
	api.HandleFunc("/dictionary/{name}", s.handleChangeDictionary).Methods(http.MethodPut)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on http://%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// withSession attaches the visitor's session, creating one when the cookie
// is missing or stale.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess session.Session
		var err error

		if cookie, cerr := r.Cookie(s.cookieName); cerr == nil {
			sess, err = s.sessions.Get(cookie.Value)
		} else {
			err = session.ErrNoSession
		}

		if err != nil {
			sess = s.sessions.Create(s.defaultDict)
			http.SetCookie(w, &http.Cookie{
				Name:     s.cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.logger.Debug("New session", "id", sess.ID, "dict", sess.Dictionary)
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) session.Session {
	sess, _ := r.Context().Value(ctxKey{}).(session.Session)
	return sess
}

// view builds the session's dictionary with its removals applied.
func (s *Server) view(sess session.Session) (*trie.Trie, error) {
	t, err := s.loader.Build(sess.Dictionary)
	if err != nil {
		return nil, err
	}
	for _, word := range sess.Removed {
		if err := t.RemoveWord(word); err != nil {
			s.logger.Debugf("Removed word '%s' not in %s: %v", word, sess.Dictionary, err)
		}
	}
	return t, nil
}

// viewOrFail writes the error response itself and returns nil on failure.
func (s *Server) viewOrFail(w http.ResponseWriter, r *http.Request) *trie.Trie {
	sess := sessionFrom(r)
	t, err := s.view(sess)
	if err != nil {
		s.logger.Errorf("Loading dictionary %s: %v", sess.Dictionary, err)
		writeError(w, http.StatusInternalServerError, "dictionary unavailable")
		return nil
	}
	return t
}
