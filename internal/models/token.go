package models

// TokenState tracks where the push token is in its one-shot lifecycle.
type TokenState string

const (
	TokenUnset    TokenState = "unset"
	TokenPending  TokenState = "pending"
	TokenSet      TokenState = "set"
	TokenDegraded TokenState = "degraded"
)

// PushToken is the device-scoped address issued by the managed push service.
// When State is TokenDegraded, Value holds the error text instead of a token.
type PushToken struct {
	Value string     `json:"value"`
	State TokenState `json:"state"`
}

// PermissionStatus mirrors the OS notification permission answer.
type PermissionStatus string

const (
	PermissionUndetermined PermissionStatus = "undetermined"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
)

// Granted reports whether notifications may be delivered.
func (s PermissionStatus) Granted() bool {
	return s == PermissionGranted
}
