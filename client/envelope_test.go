package client_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gasguard/gasguard-go/client"
)

func TestEnvelopeDecode(t *testing.T) {
	var env client.Envelope
	raw := `{"status":"success","data":{"state":"open"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	require.True(t, env.OK())

	var state client.SwitchState
	require.NoError(t, env.DecodeData(&state))
	require.Equal(t, client.ValveOpen, state.State)
}

func TestEnvelopeErrorStatus(t *testing.T) {
	var env client.Envelope
	raw := `{"status":"error","message":"valve stuck"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	require.False(t, env.OK())
	require.Equal(t, "valve stuck", env.Message)

	// Discarding an absent payload is fine, expecting one is not.
	require.NoError(t, env.DecodeData(nil))
	var state client.SwitchState
	require.Error(t, env.DecodeData(&state))
}
