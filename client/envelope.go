package client

import (
	"encoding/json"
	"fmt"
)

const statusSuccess = "success"

// Envelope is the backend's uniform response wrapper. Every endpoint returns
// it, including errors delivered over HTTP 200: a logical failure is signalled
// by Status alone, so the transport code must never be trusted in isolation.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the envelope signals logical success.
func (e Envelope) OK() bool {
	return e.Status == statusSuccess
}

// DecodeData unmarshals the envelope payload into out. A nil out discards
// the payload; an absent payload with a non-nil out is an error because the
// caller expected data the backend did not send.
func (e Envelope) DecodeData(out any) error {
	if out == nil {
		return nil
	}
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope carries no data")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}
