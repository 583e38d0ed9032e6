package response

import "time"

// RequestIDKey gin context key holding the request id.
const RequestIDKey = "request_id"

// Envelope is the single response shape for every endpoint. Data holds the
// payload on success and an ErrorBody on failure; handlers must never nest
// one envelope inside another.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ErrorBody is the data payload of a failed response.
type ErrorBody struct {
	Message   string      `json:"message"`
	ErrorCode string      `json:"errorCode"`
	Details   interface{} `json:"details,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
