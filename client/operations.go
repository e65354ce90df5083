package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gasguard/gasguard-go/credentials"
)

// Register creates a new account. Stored credentials are not touched; the
// caller logs in separately after registering.
func (c *Client) Register(ctx context.Context, username, email, password, phone string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return wrapKind(ErrValidation, "username is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return wrapKind(ErrValidation, "password is required")
	}

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"phone":    strings.TrimSpace(phone),
	}
	return c.do(ctx, http.MethodPost, registerPath, body, false, nil)
}

// Login authenticates with the backend and stores the issued credential pair.
// Returns the user payload on success and ErrAuthenticationFailed when the
// backend rejects the credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, wrapKind(ErrValidation, "password is required")
	}

	var result loginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, loginPath, body, false, &result); err != nil {
		// A logical rejection of login credentials is an authentication
		// failure even when delivered over HTTP 200.
		if errors.Is(err, ErrServerRejected) {
			return nil, wrapKind(ErrAuthenticationFailed, strings.TrimPrefix(err.Error(), ErrServerRejected.Error()+": "))
		}
		return nil, err
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return nil, wrapKind(ErrUnknown, "login response carried no token pair")
	}

	creds := credentials.Credentials{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
	if err := c.store.Set(creds); err != nil {
		return nil, wrapKind(ErrUnknown, "persist credentials: "+err.Error())
	}

	c.logger.Debug().Str("user_id", result.User.ID).Msg("logged in")
	return &result.User, nil
}

// Logout discards the stored credential pair. Local only: the backend keeps
// no session state beyond the tokens themselves.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Profile fetches the current user's account record.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, profilePath, nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the non-zero fields of update to the current account.
func (c *Client) UpdateUser(ctx context.Context, update UserUpdate) error {
	if update.Empty() {
		return wrapKind(ErrValidation, "no fields to update")
	}
	if update.Email != "" {
		if err := validateEmail(strings.TrimSpace(update.Email)); err != nil {
			return err
		}
	}
	return c.do(ctx, http.MethodPut, updateUserPath, update, true, nil)
}

// DeleteUser deletes the account server-side and clears the stored
// credential pair, so a subsequent authenticated call fails with
// ErrNotAuthenticated until the caller registers and logs in again.
func (c *Client) DeleteUser(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, deleteUserPath, nil, true, nil); err != nil {
		return err
	}
	return c.store.Clear()
}

func validateEmail(email string) error {
	if email == "" {
		return wrapKind(ErrValidation, "email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return wrapKind(ErrValidation, "invalid email format")
	}
	return nil
}
