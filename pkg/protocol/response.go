package protocol

import "encoding/json"

// Response is the daemon's reply to a single command. ID echoes the
// command id so callers can correlate asynchronous replies.
type Response struct {
	ID      string          `json:"id"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// OK builds a successful response for the given command id. Data may
// be nil when the action produces no payload.
func OK(id string, data any) Response {
	resp := Response{ID: id, Success: true}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			resp.Data = raw
		}
	}
	return resp
}

// Fail builds a failed response carrying the error message.
func Fail(id string, err error) Response {
	return Response{ID: id, Success: false, Error: err.Error()}
}
