package agent

import (
	"errors"
	"fmt"
)

// Kind classifies a failed suggestion request.
type Kind string

const (
	KindTimeout           Kind = "timeout"
	KindHTTPStatus        Kind = "http_status"
	KindMalformedResponse Kind = "malformed_response"
	KindTransport         Kind = "transport"
)

// Sentinels for errors.Is; a *GatewayError matches the one for its Kind.
var (
	ErrTimeout           = errors.New("agent: timeout")
	ErrHTTPStatus        = errors.New("agent: http status")
	ErrMalformedResponse = errors.New("agent: malformed response")
	ErrTransport         = errors.New("agent: transport")
)

var kindSentinels = map[Kind]error{
	KindTimeout:           ErrTimeout,
	KindHTTPStatus:        ErrHTTPStatus,
	KindMalformedResponse: ErrMalformedResponse,
	KindTransport:         ErrTransport,
}

// GatewayError is returned for every failed suggestion request.
type GatewayError struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("agent request timed out: %v", e.Err)
	case KindHTTPStatus:
		return fmt.Sprintf("agent responded with status (%d): %s", e.StatusCode, truncateForLog(e.Body, 512))
	case KindMalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("agent response is malformed: %v", e.Err)
		}
		return "agent response is malformed"
	default:
		return fmt.Sprintf("agent request failed: %v", e.Err)
	}
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func (e *GatewayError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf reports the gateway failure kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		return "", false
	}
	return gatewayErr.Kind, true
}
