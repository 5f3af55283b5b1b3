package respond

import "net/http"

// Canonical messages for the error statuses the API emits.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "resources not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable entity"
	MsgInternal         = "internal server error"
)

// MessageFor maps an HTTP status to its canonical envelope message.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	default:
		return MsgInternal
	}
}
