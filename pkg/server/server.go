package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// defaultFrequency is stored for add requests that omit "f".
const defaultFrequency = 1.0

// Server handles the IPC for one dictionary
type Server struct {
	completer    suggest.ICompleter
	config       config.ServerConfig
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer reads requests from in and writes responses to out.
func NewServer(completer suggest.ICompleter, cfg *config.Config, in io.Reader, out io.Writer) *Server {
	w := bufio.NewWriter(out)
	return &Server{
		completer: completer,
		config:    cfg.Server,
		decoder:   msgpack.NewDecoder(bufio.NewReader(in)),
		writer:    w,
		encoder:   msgpack.NewEncoder(w),
	}
}

// Start serves requests until the input is closed. A malformed message
// ends the stream, since the decoder cannot resynchronise after it.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if err := s.send(Response{Status: StatusReady, Count: s.completer.Count()}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			_ = s.send(Response{Status: StatusError, Error: "malformed request"})
			return fmt.Errorf("decoding request: %w", err)
		}

		s.requestCount++
		if err := s.send(s.handle(req)); err != nil {
			return err
		}
	}
}

// RequestCount returns the number of requests handled so far.
func (s *Server) RequestCount() int {
	return s.requestCount
}

func (s *Server) send(resp Response) error {
	if err := s.encoder.Encode(resp); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	return s.writer.Flush()
}

// handle dispatches req and times the lookup.
func (s *Server) handle(req Request) Response {
	start := time.Now()
	resp := s.dispatch(req)
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()

	if resp.Status == StatusError {
		log.Debugf("Request %s (%s) failed: %s", req.ID, req.Action, resp.Error)
	}
	return resp
}

func (s *Server) dispatch(req Request) Response {
	switch req.Action {
	case ActionCount:
		return Response{Status: StatusOK, Count: s.completer.Count()}
	case ActionStats:
		stats := s.completer.Stats()
		return Response{Status: StatusOK, Stats: stats, Count: stats["totalWords"]}
	case ActionList:
		return s.handleList(req)
	case ActionPrefix:
		return s.handlePrefix(req)
	}

	if req.Word == "" {
		return failure(fmt.Sprintf("missing word for action '%s'", req.Action))
	}

	switch req.Action {
	case ActionHas:
		if err := s.completer.Has(req.Word); err != nil {
			return fromError(err)
		}
		return Response{Status: StatusOK, Count: 1}
	case ActionAdd:
		frequency := defaultFrequency
		if req.Frequency != nil {
			frequency = *req.Frequency
		}
		if err := s.completer.Add(req.Word, frequency); err != nil {
			return fromError(err)
		}
		return Response{Status: StatusOK, Count: s.completer.Count()}
	case ActionRemove:
		if err := s.completer.Remove(req.Word); err != nil {
			return fromError(err)
		}
		return Response{Status: StatusOK, Count: s.completer.Count()}
	case ActionSuffix:
		return wordList(s.completer.Suffix(req.Word))
	case ActionSuggest:
		return wordList(s.completer.Correct(req.Word))
	default:
		return failure(fmt.Sprintf("unknown action '%s'", req.Action))
	}
}

func (s *Server) handleList(req Request) Response {
	words := s.completer.Words(true)
	if req.Limit > 0 && req.Limit < len(words) {
		words = words[:req.Limit]
	}
	return wordList(words)
}

// handlePrefix validates the prefix length and clamps the limit before
// completing.
func (s *Server) handlePrefix(req Request) Response {
	n := utf8.RuneCountInString(req.Word)
	if n == 0 {
		return failure("missing prefix")
	}
	if n < s.config.MinPrefix {
		return failure(fmt.Sprintf("prefix must be at least %d characters", s.config.MinPrefix))
	}
	if n > s.config.MaxPrefix {
		return failure(fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.MaxPrefix))
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		limit = s.config.MaxLimit
	}

	results := s.completer.Complete(req.Word, limit)
	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = Suggestion{Word: r.Word, Rank: uint16(i + 1), Frequency: r.Frequency}
	}
	return Response{Status: StatusOK, Suggestions: suggestions, Count: len(suggestions)}
}

func wordList(words []string) Response {
	return Response{Status: StatusOK, Words: words, Count: len(words)}
}

func failure(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

func fromError(err error) Response {
	if errors.Is(err, trie.ErrNotFound) {
		return Response{Status: StatusNotFound, Error: err.Error()}
	}
	return failure(err.Error())
}
