package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/gorilla/mux"
)

// WordResponse answers word checks and removals.
type WordResponse struct {
	Word    string `json:"word"`
	Present bool   `json:"present"`
	Message string `json:"message"`
}

// WordsResponse lists words.
type WordsResponse struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

// Completion is one prefix search result.
type Completion struct {
	Word      string  `json:"word"`
	Frequency float64 `json:"frequency"`
}

// PrefixResponse answers prefix searches.
type PrefixResponse struct {
	Prefix  string       `json:"prefix"`
	Results []Completion `json:"results"`
	Message string       `json:"message,omitempty"`
}

// MatchResponse answers suffix searches and spelling suggestions.
type MatchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
	Message string   `json:"message,omitempty"`
}

// DictionariesResponse lists the available listings.
type DictionariesResponse struct {
	Dictionaries []string `json:"dictionaries"`
	Selected     string   `json:"selected"`
	Message      string   `json:"message,omitempty"`
}

// HealthResponse reports liveness and cache usage.
type HealthResponse struct {
	Status       string `json:"status"`
	Sessions     int    `json:"sessions"`
	Dictionaries int    `json:"dictionaries"`
	Loaded       int    `json:"loaded"`
	LoadedWords  int    `json:"loaded_words"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Status: status})
}

// param returns the lower-cased route variable.
func param(r *http.Request, name string) string {
	return strings.ToLower(strings.TrimSpace(mux.Vars(r)[name]))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.loader.Stats()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Sessions:     s.sessions.Len(),
		Dictionaries: stats.Available,
		Loaded:       stats.Loaded,
		LoadedWords:  stats.LoadedWords,
	})
}

func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	word := param(r, "word")
	t := s.viewOrFail(w, r)
	if t == nil {
		return
	}

	if _, err := t.HasWord(word); err != nil {
		writeJSON(w, http.StatusNotFound, WordResponse{
			Word:    word,
			Message: fmt.Sprintf("'%s' is not in dictionary.", word),
		})
		return
	}
	writeJSON(w, http.StatusOK, WordResponse{
		Word:    word,
		Present: true,
		Message: fmt.Sprintf("'%s' is in dictionary.", word),
	})
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	t := s.viewOrFail(w, r)
	if t == nil {
		return
	}
	words := t.AllWords()
	sort.Strings(words)
	writeJSON(w, http.StatusOK, WordsResponse{Words: words, Count: len(words)})
}

// handleRemoveWord checks the word against the unmodified listing, then
// records it in the session overlay.
func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	word := param(r, "word")
	sess := sessionFrom(r)

	removed, err := s.sessions.Removed(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if slices.Contains(removed, word) {
		writeJSON(w, http.StatusConflict, WordResponse{
			Word:    word,
			Message: fmt.Sprintf("'%s' has already been removed.", word),
		})
		return
	}

	base, err := s.loader.Build(sess.Dictionary)
	if err != nil {
		s.logger.Errorf("Loading dictionary %s: %v", sess.Dictionary, err)
		writeError(w, http.StatusInternalServerError, "dictionary unavailable")
		return
	}
	if _, err := base.HasWord(word); err != nil {
		writeJSON(w, http.StatusNotFound, WordResponse{
			Word:    word,
			Message: fmt.Sprintf("'%s' is not in dictionary.", word),
		})
		return
	}

	if err := s.sessions.MarkRemoved(sess.ID, word); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrAlreadyRemoved) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, WordResponse{
		Word:    word,
		Message: fmt.Sprintf("'%s' was removed from dictionary.", word),
	})
}

func (s *Server) handlePrefix(w http.ResponseWriter, r *http.Request) {
	prefix := param(r, "prefix")
	t := s.viewOrFail(w, r)
	if t == nil {
		return
	}

	resp := PrefixResponse{Prefix: prefix, Results: toCompletions(t.PrefixSearch(prefix))}
	if len(resp.Results) == 0 {
		resp.Message = fmt.Sprintf("No results for '%s'.", prefix)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuffix(w http.ResponseWriter, r *http.Request) {
	suffix := param(r, "suffix")
	t := s.viewOrFail(w, r)
	if t == nil {
		return
	}

	resp := MatchResponse{Query: suffix, Results: t.SuffixSearch(suffix)}
	if len(resp.Results) == 0 {
		resp.Message = fmt.Sprintf("No results for '%s'.", suffix)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	word := param(r, "word")
	t := s.viewOrFail(w, r)
	if t == nil {
		return
	}

	resp := MatchResponse{Query: word, Results: t.Suggest(word)}
	if len(resp.Results) == 0 {
		resp.Message = fmt.Sprintf("No suggestions available for '%s'.", word)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDictionaries(w http.ResponseWriter, r *http.Request) {
	infos, err := s.loader.Available()
	if err != nil {
		s.logger.Errorf("Listing dictionaries: %v", err)
		writeError(w, http.StatusInternalServerError, "cannot list dictionaries")
		return
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	writeJSON(w, http.StatusOK, DictionariesResponse{
		Dictionaries: names,
		Selected:     sessionFrom(r).Dictionary,
	})
}

func (s *Server) handleChangeDictionary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	sess := sessionFrom(r)

	if !s.loader.Has(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dictionary '%s'", name))
		return
	}

	changed, err := s.sessions.SetDictionary(sess.ID, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := DictionariesResponse{Selected: name}
	if changed {
		resp.Message = fmt.Sprintf("Dictionary changed to '%s'", name)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Reset(sessionFrom(r).ID, s.defaultDict); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func toCompletions(matches []trie.Match) []Completion {
	out := make([]Completion, 0, len(matches))
	for _, m := range matches {
		out = append(out, Completion{Word: m.Word, Frequency: m.Frequency})
	}
	return out
}
