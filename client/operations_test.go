package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gasguard/gasguard-go/client"
	"github.com/gasguard/gasguard-go/credentials"
)

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)

	err := f.client.Register(context.Background(), testUsername, "new@example.com", testPassword, "+34 600 000 000")
	require.NoError(t, err)

	// Registration never touches stored credentials.
	_, err = f.store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	err := f.client.Register(context.Background(), testUsername, testEmail, testPassword, "")
	require.ErrorIs(t, err, client.ErrServerRejected)
	require.ErrorContains(t, err, "email already registered")
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.client.Register(ctx, "", "new@example.com", testPassword, ""), client.ErrValidation)
	require.ErrorIs(t, f.client.Register(ctx, testUsername, "not-an-email", testPassword, ""), client.ErrValidation)
	require.ErrorIs(t, f.client.Register(ctx, testUsername, "new@example.com", "", ""), client.ErrValidation)
}

func TestUpdateUser(t *testing.T) {
	f := setupTestFixture(t)
	f.loggedIn(t)

	err := f.client.UpdateUser(context.Background(), client.UserUpdate{Phone: "+34 600 111 222"})
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testAccessToken, f.backend.lastAuth["/users/update"])
}

func TestUpdateUserValidation(t *testing.T) {
	f := setupTestFixture(t)
	f.loggedIn(t)
	ctx := context.Background()

	require.ErrorIs(t, f.client.UpdateUser(ctx, client.UserUpdate{}), client.ErrValidation)
	require.ErrorIs(t, f.client.UpdateUser(ctx, client.UserUpdate{Email: "broken"}), client.ErrValidation)
}

func TestSensorReads(t *testing.T) {
	f := setupTestFixture(t)
	f.loggedIn(t)
	ctx := context.Background()

	gas, err := f.client.GasValue(ctx)
	require.NoError(t, err)
	require.InDelta(t, 0.02, gas.Value, 1e-9)
	require.Equal(t, "%", gas.Unit)

	fan, err := f.client.FanState(ctx)
	require.NoError(t, err)
	require.Equal(t, client.FanOff, fan.State)
	require.False(t, fan.Active())

	valve, err := f.client.ValveState(ctx)
	require.NoError(t, err)
	require.Equal(t, client.ValveOpen, valve.State)
	require.True(t, valve.Active())
}

func TestActuatorTriggers(t *testing.T) {
	f := setupTestFixture(t)
	f.loggedIn(t)
	ctx := context.Background()

	fan, err := f.client.TriggerFan(ctx, true)
	require.NoError(t, err)
	require.Equal(t, client.FanOn, fan.State)
	require.Contains(t, f.backend.lastAuth, "/events/fan-state/on")

	valve, err := f.client.TriggerValve(ctx, false)
	require.NoError(t, err)
	require.Equal(t, client.ValveClosed, valve.State)
	require.Contains(t, f.backend.lastAuth, "/events/valve-state-close")
}

func TestDangerNotifications(t *testing.T) {
	f := setupTestFixture(t)
	f.loggedIn(t)

	notifications, err := f.client.DangerNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "danger", notifications[0].Level)
	require.Contains(t, notifications[0].Message, "gas concentration")
}
