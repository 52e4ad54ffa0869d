package outcome

import (
	"encoding/json"
	"fmt"
)

// envelope accepts both error shapes the backend has used:
// {"detail": {...}} and {"error": {...}}. detail may also be a bare string.
type envelope struct {
	Detail json.RawMessage `json:"detail"`
	Error  json.RawMessage `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromResponse classifies a completed HTTP exchange.
func FromResponse[T any](status int, body []byte) Outcome[T] {
	if status >= 200 && status < 300 {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return Fail[T](&Error{
				Class:   ParseError,
				Code:    CodeParse,
				Message: fmt.Sprintf("failed to decode response: %v", err),
				Status:  status,
			})
		}
		return OK(v)
	}
	return Fail[T](httpError(status, body))
}

// FromTransportError classifies a request that produced no response at all:
// unreachable host, DNS failure, timeout or cancellation.
func FromTransportError[T any](err error) Outcome[T] {
	msg := "network error"
	if err != nil {
		msg = err.Error()
	}
	return Fail[T](&Error{Class: NetworkError, Code: CodeNetwork, Message: msg, Status: 0})
}

func httpError(status int, body []byte) *Error {
	e := &Error{
		Class:   HTTPError,
		Code:    CodeUnknown,
		Message: fmt.Sprintf("HTTP %d", status),
		Status:  status,
	}

	var env envelope
	if len(body) == 0 || json.Unmarshal(body, &env) != nil {
		return e
	}

	detail, detailText := decodeErrorBody(env.Detail)
	inner, _ := decodeErrorBody(env.Error)

	// Fields fall back independently: detail, then error, then the default.
	switch {
	case detail.Code != "":
		e.Code = detail.Code
	case inner.Code != "":
		e.Code = inner.Code
	}
	switch {
	case detail.Message != "":
		e.Message = detail.Message
	case detailText != "":
		e.Message = detailText
	case inner.Message != "":
		e.Message = inner.Message
	}
	return e
}

// decodeErrorBody reads either an object with code/message or a bare string.
func decodeErrorBody(raw json.RawMessage) (errorBody, string) {
	var b errorBody
	if len(raw) == 0 {
		return b, ""
	}
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return b, text
	}
	return b, ""
}
