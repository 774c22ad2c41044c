/*
Package server implements msgpack IPC for the dictionary.

Clients write a stream of msgpack encoded requests to stdin and read one
response per request from stdout. Requests are handled in order, and each
response carries the time the lookup took in microseconds.

Every request names an action and the fields it needs:

	{"id": "q1", "a": "prefix", "w": "ba", "l": 3}
	{"id": "q2", "a": "add", "w": "bazaar", "f": 1520.5}

An add request without "f" stores the word with frequency 1.
	{"id": "q3", "a": "suggest", "w": "cxt"}

Responses echo the id and report a status of "ok", "not_found" or "error":

	{"id": "q1", "st": "ok", "s": [{"w": "back", "r": 1, "f": 740270}, ...], "c": 3, "t": 41}
	{"id": "q3", "st": "ok", "ws": ["cat", "cot", "cut"], "c": 3, "t": 12}

Prefix requests are checked against the configured prefix length bounds and
their limit is clamped to the configured maximum. Before the first request
the server writes a single response with status "ready".
*/
package server

// Supported request actions.
const (
	ActionHas     = "has"
	ActionAdd     = "add"
	ActionRemove  = "remove"
	ActionCount   = "count"
	ActionList    = "list"
	ActionPrefix  = "prefix"
	ActionSuffix  = "suffix"
	ActionSuggest = "suggest"
	ActionStats   = "stats"
)

// Response statuses.
const (
	StatusReady    = "ready"
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Request is one client message.
type Request struct {
	ID        string   `msgpack:"id"`
	Action    string   `msgpack:"a"`
	Word      string   `msgpack:"w,omitempty"`
	Frequency *float64 `msgpack:"f,omitempty"`
	Limit     int      `msgpack:"l,omitempty"`
}

// Suggestion - ranked prefix completion
type Suggestion struct {
	Word      string  `msgpack:"w"`
	Rank      uint16  `msgpack:"r"`
	Frequency float64 `msgpack:"f"`
}

// Response answers a single Request.
type Response struct {
	ID          string         `msgpack:"id"`
	Status      string         `msgpack:"st"`
	Error       string         `msgpack:"e,omitempty"`
	Suggestions []Suggestion   `msgpack:"s,omitempty"`
	Words       []string       `msgpack:"ws,omitempty"`
	Stats       map[string]int `msgpack:"x,omitempty"`
	Count       int            `msgpack:"c"`
	TimeTaken   int64          `msgpack:"t"`
}
