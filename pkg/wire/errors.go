package wire

import "cosmossdk.io/errors"

// ModuleName scopes every sentinel error this module registers, the same
// convention the teacher uses for its own module-scoped error codes.
const ModuleName = "clean"

// Error taxonomy, independent of transport. RPC handlers wrap these with a
// transport status; the coordinator broadcasts the rest as an error prompt.
var (
	ErrInvalidSessionType    = errors.Register(ModuleName, 1, "invalid session type")
	ErrInvalidCoinValue      = errors.Register(ModuleName, 2, "invalid coin value")
	ErrInvalidServerRequest  = errors.Register(ModuleName, 3, "invalid server request")
	ErrInvalidClientResponse = errors.Register(ModuleName, 4, "invalid client response")
	ErrClientDisconnected    = errors.Register(ModuleName, 5, "client disconnected")
	ErrSessionNotFound       = errors.Register(ModuleName, 6, "session not found")
	ErrUserAlreadyInSession  = errors.Register(ModuleName, 7, "user already in session")
	ErrUserNotInSession      = errors.Register(ModuleName, 8, "user not in session")
	ErrUnknownWinner         = errors.Register(ModuleName, 9, "unknown winner")
	ErrClientUnreachable     = errors.Register(ModuleName, 10, "client unreachable")
)

// ClientError wraps a client-reported failure text (the wire ClientError
// response variant), kept distinct from the registered sentinels above
// because its text is caller-supplied, not fixed.
type ClientError struct {
	Text string
}

func (e *ClientError) Error() string { return "client error: " + e.Text }
