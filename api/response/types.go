/*
Package response writes the JSON envelope every endpoint returns.

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }

Status codes are mapped here and nowhere else. Internal errors are logged in full and
reach the client only as "Internal Server Error".
*/
package response

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// Response Unified response envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}
