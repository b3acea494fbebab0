package response

import (
	"encoding/json"
	"time"
)

// Version is reported in every response's meta block.
const Version = "1.0.0"

// DateTimeFormat is the wire format for timestamps.
const DateTimeFormat = time.RFC3339

// Resp is the standard JSON response body.
type Resp struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
	Meta    Meta       `json:"meta"`
}

// ErrorBody carries a stable machine code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta is attached to every response.
type Meta struct {
	Version   string `json:"version"`
	RequestID string `json:"request_id,omitempty"`
}

// DateTime is a timestamp that marshals as DateTimeFormat in UTC.
type DateTime time.Time

// MarshalJSON implements json.Marshaler for DateTime.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(DateTimeFormat))
}
