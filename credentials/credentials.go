package credentials

import "errors"

// ErrNoCredentials is returned by Store.Get when nothing is stored.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials holds the token pair issued by the backend on login.
// Both tokens are opaque bearer strings; the client never inspects the
// refresh token and only peeks at the access token's expiry (see expiry.go).
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether the pair holds no tokens at all.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Store is the durable key-value home of the credential pair. At most one
// pair is held at a time (single logged-in user per client instance).
// Implementations must be safe for concurrent use: login, refresh and logout
// all read-modify-write the same pair.
type Store interface {
	Get() (Credentials, error)
	Set(Credentials) error
	Clear() error
}
