package response

import "net/http"

// Envelope is the uniform wire format for every endpoint. Exactly one of
// Success or Error is non-nil, chosen by whether Code is below 400.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Success any    `json:"success"`
	Error   any    `json:"error"`
}

// Wrap builds the envelope for the given status code and payload.
func Wrap(code int, body any) Envelope {
	env := Envelope{
		Status: http.StatusText(code),
		Code:   code,
	}
	if code < http.StatusBadRequest {
		env.Success = body
	} else {
		env.Error = body
	}
	return env
}

// Message is the common single-message payload.
type Message struct {
	Text string `json:"message"`
}

// Msg wraps a plain message body.
func Msg(text string) Message {
	return Message{Text: text}
}
