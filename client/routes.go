package client

// Backend endpoint paths. The events tree is served by the device gateway,
// the auth and users trees by the account service; both sit behind the same
// base URL.
const (
	registerPath = "/auth/register"
	loginPath    = "/auth/login"
	refreshPath  = "/auth/refresh"

	profilePath    = "/users/profile"
	updateUserPath = "/users/update"
	deleteUserPath = "/users/delete"

	gasValuePath   = "/events/gas-value"
	fanStatePath   = "/events/fan-state"
	valveStatePath = "/events/valve-state"

	valveOpenPath  = "/events/valve-state-open"
	valveClosePath = "/events/valve-state-close"

	notificationDangerPath = "/events/notification-danger"
)
