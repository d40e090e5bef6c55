package upstream

import (
	"encoding/json"
	"fmt"
)

// Error is a typed upstream failure carrying the status code and whatever
// body the Connect API sent back.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Details returns the response body in a JSON-envelope-friendly form: raw
// JSON when the body parses, plain string otherwise, nil when empty.
func (e *Error) Details() any {
	if len(e.Body) == 0 {
		return nil
	}
	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return string(e.Body)
}
