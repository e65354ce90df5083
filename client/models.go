package client

import "time"

// User is the account record returned by the profile and login endpoints.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// UserUpdate carries the mutable account fields for UpdateUser. Zero-value
// fields are omitted from the request and left untouched by the backend.
type UserUpdate struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u == UserUpdate{}
}

// GasReading is a gas concentration sample from the sensor board.
type GasReading struct {
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recordedAt,omitempty"`
}

// Actuator state strings reported by the fan and valve endpoints.
const (
	FanOn       = "on"
	FanOff      = "off"
	ValveOpen   = "open"
	ValveClosed = "closed"
)

// SwitchState is the reported position of a fan or valve actuator.
type SwitchState struct {
	State string `json:"state"`
}

// Active reports whether the actuator is energized (fan running or valve open).
func (s SwitchState) Active() bool {
	return s.State == FanOn || s.State == ValveOpen
}

// Notification is one entry of the danger alert feed.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// loginResult is the /auth/login payload: the token pair plus the user record.
type loginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// refreshResult is the /auth/refresh payload. The refresh token is not
// rotated by the backend; only a new access token is issued.
type refreshResult struct {
	AccessToken string `json:"accessToken"`
}
