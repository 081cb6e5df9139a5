// Package wire holds the domain value types for the session protocol and
// their bijective mappings to the over-the-wire envelope shapes in wire.go.
// This file is pure: no I/O, no locking, nothing transport-specific.
package wire

import "fmt"

// SessionID is an opaque, server-allocated session identifier.
type SessionID uint64

// UserID is an opaque, client-supplied user identifier.
type UserID uint64

// SessionType is the closed set of mini-games a session can host.
type SessionType int32

const (
	SessionTypeDice SessionType = iota
	SessionTypeCoin
)

func (t SessionType) String() string {
	switch t {
	case SessionTypeDice:
		return "dice"
	case SessionTypeCoin:
		return "coin"
	default:
		return fmt.Sprintf("SessionType(%d)", int32(t))
	}
}

// Coin is the closed set of coin-flip outcomes.
type Coin int32

const (
	CoinHeads Coin = iota
	CoinTails
)

func (c Coin) String() string {
	switch c {
	case CoinHeads:
		return "heads"
	case CoinTails:
		return "tails"
	default:
		return fmt.Sprintf("Coin(%d)", int32(c))
	}
}

// HostInfo is the HostSession request payload.
type HostInfo struct {
	Type        SessionType
	PlayerCount uint8
}

// SessionData is the HostSession/ListSessions response payload for one
// session.
type SessionData struct {
	SessionID SessionID
	Type      SessionType
	Users     []string
}

// Sessions is the ListSessions response payload.
type Sessions struct {
	Data []SessionData
}

// JoinInfo is the JoinSession request payload.
type JoinInfo struct {
	SessionID SessionID
	UserID    UserID
	UserName  string
}

// StartInfo is the StartSession request payload. Quorum drives the game
// loop (spec §4.4); StartSession itself is a forward-compatibility hook.
type StartInfo struct {
	SessionID SessionID
}

// EventRegister keys a client's event conduit by (session, user); it is
// also used as a map key by the RPC layer's routing table.
type EventRegister struct {
	SessionID SessionID
	UserID    UserID
}

// Empty is the placeholder payload for operations with no meaningful
// response body.
type Empty struct{}

// ServerRequest is the closed set of server-issued prompts. Each variant
// below implements it with a marker method, the idiomatic Go stand-in for
// a Rust enum.
type ServerRequest interface {
	isServerRequest()
}

type UserJoined struct {
	SessionID SessionID
	UserID    UserID
	UserName  string
}

type Ping struct {
	Text string
}

type RollDice struct {
	Sides uint8
	Count uint8
}

type FlipCoin struct {
	Count uint8
}

type Winner struct {
	UserID   UserID
	UserName string
}

type TryAgain struct{}

// ServerErrorPrompt is the wire "Error" prompt; named to avoid colliding
// with the builtin error type.
type ServerErrorPrompt struct {
	Text string
}

func (UserJoined) isServerRequest()        {}
func (Ping) isServerRequest()              {}
func (RollDice) isServerRequest()          {}
func (FlipCoin) isServerRequest()          {}
func (Winner) isServerRequest()            {}
func (TryAgain) isServerRequest()          {}
func (ServerErrorPrompt) isServerRequest() {}

// ClientResponse is the closed set of client-issued responses.
type ClientResponse interface {
	isClientResponse()
}

type Pong struct {
	Text string
}

type DiceGuess struct {
	Numbers []uint8
}

type CoinGuess struct {
	Coins []Coin
}

type Again struct {
	Value bool
}

// ClientErrorResponse is the wire "ClientError" response variant.
type ClientErrorResponse struct {
	Text string
}

func (Pong) isClientResponse()                {}
func (DiceGuess) isClientResponse()           {}
func (CoinGuess) isClientResponse()           {}
func (Again) isClientResponse()               {}
func (ClientErrorResponse) isClientResponse() {}

// ClientEventResponse pairs a client response with the EventRegister that
// routes it back to the awaiting conduit.
type ClientEventResponse struct {
	Register EventRegister
	Response ClientResponse
}
