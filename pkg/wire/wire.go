package wire

// The structs in this file are the over-the-wire envelope shapes: the
// schema this module originates (spec.md treats an external schema file as
// out of scope and specifies only its semantic content). Enumerations are
// carried as int32s the way a protobuf enum would be, and the oneof-style
// variants (WireServerRequest, WireClientResponse) carry an explicit Kind
// tag plus one populated payload pointer, mirroring a protobuf oneof.
//
// ToWire is total. FromWire fails with ErrInvalidSessionType,
// ErrInvalidCoinValue, ErrInvalidServerRequest, or ErrInvalidClientResponse
// on any wire value that isn't structurally valid; unknown enum integers
// are rejected, never silently coerced.

const (
	wireSessionTypeDice int32 = 0
	wireSessionTypeCoin int32 = 1
)

func (t SessionType) ToWire() int32 {
	switch t {
	case SessionTypeCoin:
		return wireSessionTypeCoin
	default:
		return wireSessionTypeDice
	}
}

func SessionTypeFromWire(v int32) (SessionType, error) {
	switch v {
	case wireSessionTypeDice:
		return SessionTypeDice, nil
	case wireSessionTypeCoin:
		return SessionTypeCoin, nil
	default:
		return 0, ErrInvalidSessionType
	}
}

const (
	wireCoinHeads int32 = 0
	wireCoinTails int32 = 1
)

func (c Coin) ToWire() int32 {
	switch c {
	case CoinTails:
		return wireCoinTails
	default:
		return wireCoinHeads
	}
}

func CoinFromWire(v int32) (Coin, error) {
	switch v {
	case wireCoinHeads:
		return CoinHeads, nil
	case wireCoinTails:
		return CoinTails, nil
	default:
		return 0, ErrInvalidCoinValue
	}
}

// WireHostInfo is the wire shape of HostInfo.
type WireHostInfo struct {
	Type        int32
	PlayerCount uint32
}

func (hi HostInfo) ToWire() WireHostInfo {
	return WireHostInfo{Type: hi.Type.ToWire(), PlayerCount: uint32(hi.PlayerCount)}
}

func HostInfoFromWire(w WireHostInfo) (HostInfo, error) {
	t, err := SessionTypeFromWire(w.Type)
	if err != nil {
		return HostInfo{}, err
	}
	return HostInfo{Type: t, PlayerCount: uint8(w.PlayerCount)}, nil
}

// WireSessionData is the wire shape of SessionData.
type WireSessionData struct {
	SessionID uint64
	Type      int32
	Users     []string
}

func (sd SessionData) ToWire() WireSessionData {
	return WireSessionData{
		SessionID: uint64(sd.SessionID),
		Type:      sd.Type.ToWire(),
		Users:     append([]string(nil), sd.Users...),
	}
}

func SessionDataFromWire(w WireSessionData) (SessionData, error) {
	t, err := SessionTypeFromWire(w.Type)
	if err != nil {
		return SessionData{}, err
	}
	return SessionData{
		SessionID: SessionID(w.SessionID),
		Type:      t,
		Users:     append([]string(nil), w.Users...),
	}, nil
}

// WireSessions is the wire shape of Sessions.
type WireSessions struct {
	Data []WireSessionData
}

func (s Sessions) ToWire() WireSessions {
	out := make([]WireSessionData, len(s.Data))
	for i, sd := range s.Data {
		out[i] = sd.ToWire()
	}
	return WireSessions{Data: out}
}

func SessionsFromWire(w WireSessions) (Sessions, error) {
	out := make([]SessionData, len(w.Data))
	for i, wd := range w.Data {
		sd, err := SessionDataFromWire(wd)
		if err != nil {
			return Sessions{}, err
		}
		out[i] = sd
	}
	return Sessions{Data: out}, nil
}

// WireJoinInfo is the wire shape of JoinInfo.
type WireJoinInfo struct {
	SessionID uint64
	UserID    uint64
	UserName  string
}

func (ji JoinInfo) ToWire() WireJoinInfo {
	return WireJoinInfo{SessionID: uint64(ji.SessionID), UserID: uint64(ji.UserID), UserName: ji.UserName}
}

func JoinInfoFromWire(w WireJoinInfo) JoinInfo {
	return JoinInfo{SessionID: SessionID(w.SessionID), UserID: UserID(w.UserID), UserName: w.UserName}
}

// WireStartInfo is the wire shape of StartInfo.
type WireStartInfo struct {
	SessionID uint64
}

func (si StartInfo) ToWire() WireStartInfo { return WireStartInfo{SessionID: uint64(si.SessionID)} }

func StartInfoFromWire(w WireStartInfo) StartInfo {
	return StartInfo{SessionID: SessionID(w.SessionID)}
}

// WireEventRegister is the wire shape of EventRegister.
type WireEventRegister struct {
	SessionID uint64
	UserID    uint64
}

func (er EventRegister) ToWire() WireEventRegister {
	return WireEventRegister{SessionID: uint64(er.SessionID), UserID: uint64(er.UserID)}
}

func EventRegisterFromWire(w WireEventRegister) EventRegister {
	return EventRegister{SessionID: SessionID(w.SessionID), UserID: UserID(w.UserID)}
}

// WireEmpty is the wire shape of Empty.
type WireEmpty struct{}

// Server request variant kinds, the wire tag for the ServerRequest oneof.
const (
	serverRequestKindUserJoined int32 = iota
	serverRequestKindPing
	serverRequestKindRollDice
	serverRequestKindFlipCoin
	serverRequestKindWinner
	serverRequestKindTryAgain
	serverRequestKindError
)

type wireUserJoined struct {
	SessionID uint64
	UserID    uint64
	UserName  string
}

type wirePing struct{ Text string }

type wireRollDice struct {
	Sides uint32
	Count uint32
}

type wireFlipCoin struct{ Count uint32 }

type wireWinner struct {
	UserID   uint64
	UserName string
}

type wireTryAgain struct{}

type wireServerError struct{ Text string }

// WireServerRequest is the wire shape of the ServerRequest sum type: a
// discriminant plus exactly one populated payload, the protobuf-oneof
// idiom expressed without protobuf.
type WireServerRequest struct {
	Kind       int32
	UserJoined *wireUserJoined  `json:",omitempty"`
	Ping       *wirePing        `json:",omitempty"`
	RollDice   *wireRollDice    `json:",omitempty"`
	FlipCoin   *wireFlipCoin    `json:",omitempty"`
	Winner     *wireWinner      `json:",omitempty"`
	TryAgain   *wireTryAgain    `json:",omitempty"`
	Error      *wireServerError `json:",omitempty"`
}

func ServerRequestToWire(sr ServerRequest) WireServerRequest {
	switch v := sr.(type) {
	case UserJoined:
		return WireServerRequest{Kind: serverRequestKindUserJoined, UserJoined: &wireUserJoined{
			SessionID: uint64(v.SessionID), UserID: uint64(v.UserID), UserName: v.UserName,
		}}
	case Ping:
		return WireServerRequest{Kind: serverRequestKindPing, Ping: &wirePing{Text: v.Text}}
	case RollDice:
		return WireServerRequest{Kind: serverRequestKindRollDice, RollDice: &wireRollDice{
			Sides: uint32(v.Sides), Count: uint32(v.Count),
		}}
	case FlipCoin:
		return WireServerRequest{Kind: serverRequestKindFlipCoin, FlipCoin: &wireFlipCoin{Count: uint32(v.Count)}}
	case Winner:
		return WireServerRequest{Kind: serverRequestKindWinner, Winner: &wireWinner{
			UserID: uint64(v.UserID), UserName: v.UserName,
		}}
	case TryAgain:
		return WireServerRequest{Kind: serverRequestKindTryAgain, TryAgain: &wireTryAgain{}}
	case ServerErrorPrompt:
		return WireServerRequest{Kind: serverRequestKindError, Error: &wireServerError{Text: v.Text}}
	default:
		// Unreachable for any value satisfying the closed ServerRequest set.
		return WireServerRequest{}
	}
}

func ServerRequestFromWire(w WireServerRequest) (ServerRequest, error) {
	switch w.Kind {
	case serverRequestKindUserJoined:
		if w.UserJoined == nil {
			return nil, ErrInvalidServerRequest
		}
		return UserJoined{
			SessionID: SessionID(w.UserJoined.SessionID),
			UserID:    UserID(w.UserJoined.UserID),
			UserName:  w.UserJoined.UserName,
		}, nil
	case serverRequestKindPing:
		if w.Ping == nil {
			return nil, ErrInvalidServerRequest
		}
		return Ping{Text: w.Ping.Text}, nil
	case serverRequestKindRollDice:
		if w.RollDice == nil {
			return nil, ErrInvalidServerRequest
		}
		return RollDice{Sides: uint8(w.RollDice.Sides), Count: uint8(w.RollDice.Count)}, nil
	case serverRequestKindFlipCoin:
		if w.FlipCoin == nil {
			return nil, ErrInvalidServerRequest
		}
		return FlipCoin{Count: uint8(w.FlipCoin.Count)}, nil
	case serverRequestKindWinner:
		if w.Winner == nil {
			return nil, ErrInvalidServerRequest
		}
		return Winner{UserID: UserID(w.Winner.UserID), UserName: w.Winner.UserName}, nil
	case serverRequestKindTryAgain:
		if w.TryAgain == nil {
			return nil, ErrInvalidServerRequest
		}
		return TryAgain{}, nil
	case serverRequestKindError:
		if w.Error == nil {
			return nil, ErrInvalidServerRequest
		}
		return ServerErrorPrompt{Text: w.Error.Text}, nil
	default:
		return nil, ErrInvalidServerRequest
	}
}

// Client response variant kinds, the wire tag for the ClientResponse oneof.
const (
	clientResponseKindPong int32 = iota
	clientResponseKindDiceGuess
	clientResponseKindCoinGuess
	clientResponseKindAgain
	clientResponseKindClientError
)

type wirePong struct{ Text string }

type wireDiceGuess struct{ Numbers []uint32 }

type wireCoinGuess struct{ Coins []int32 }

type wireAgain struct{ Value bool }

type wireClientError struct{ Text string }

// WireClientResponse is the wire shape of the ClientResponse sum type.
type WireClientResponse struct {
	Kind        int32
	Pong        *wirePong        `json:",omitempty"`
	DiceGuess   *wireDiceGuess   `json:",omitempty"`
	CoinGuess   *wireCoinGuess   `json:",omitempty"`
	Again       *wireAgain       `json:",omitempty"`
	ClientError *wireClientError `json:",omitempty"`
}

func ClientResponseToWire(cr ClientResponse) WireClientResponse {
	switch v := cr.(type) {
	case Pong:
		return WireClientResponse{Kind: clientResponseKindPong, Pong: &wirePong{Text: v.Text}}
	case DiceGuess:
		nums := make([]uint32, len(v.Numbers))
		for i, n := range v.Numbers {
			nums[i] = uint32(n)
		}
		return WireClientResponse{Kind: clientResponseKindDiceGuess, DiceGuess: &wireDiceGuess{Numbers: nums}}
	case CoinGuess:
		coins := make([]int32, len(v.Coins))
		for i, c := range v.Coins {
			coins[i] = c.ToWire()
		}
		return WireClientResponse{Kind: clientResponseKindCoinGuess, CoinGuess: &wireCoinGuess{Coins: coins}}
	case Again:
		return WireClientResponse{Kind: clientResponseKindAgain, Again: &wireAgain{Value: v.Value}}
	case ClientErrorResponse:
		return WireClientResponse{Kind: clientResponseKindClientError, ClientError: &wireClientError{Text: v.Text}}
	default:
		return WireClientResponse{}
	}
}

func ClientResponseFromWire(w WireClientResponse) (ClientResponse, error) {
	switch w.Kind {
	case clientResponseKindPong:
		if w.Pong == nil {
			return nil, ErrInvalidClientResponse
		}
		return Pong{Text: w.Pong.Text}, nil
	case clientResponseKindDiceGuess:
		if w.DiceGuess == nil {
			return nil, ErrInvalidClientResponse
		}
		nums := make([]uint8, len(w.DiceGuess.Numbers))
		for i, n := range w.DiceGuess.Numbers {
			nums[i] = uint8(n)
		}
		return DiceGuess{Numbers: nums}, nil
	case clientResponseKindCoinGuess:
		if w.CoinGuess == nil {
			return nil, ErrInvalidClientResponse
		}
		coins := make([]Coin, len(w.CoinGuess.Coins))
		for i, c := range w.CoinGuess.Coins {
			coin, err := CoinFromWire(c)
			if err != nil {
				return nil, err
			}
			coins[i] = coin
		}
		return CoinGuess{Coins: coins}, nil
	case clientResponseKindAgain:
		if w.Again == nil {
			return nil, ErrInvalidClientResponse
		}
		return Again{Value: w.Again.Value}, nil
	case clientResponseKindClientError:
		if w.ClientError == nil {
			return nil, ErrInvalidClientResponse
		}
		return ClientErrorResponse{Text: w.ClientError.Text}, nil
	default:
		return nil, ErrInvalidClientResponse
	}
}

// WireClientEventResponse is the wire shape of ClientEventResponse.
type WireClientEventResponse struct {
	Register WireEventRegister
	Response WireClientResponse
}

func (cer ClientEventResponse) ToWire() WireClientEventResponse {
	return WireClientEventResponse{
		Register: cer.Register.ToWire(),
		Response: ClientResponseToWire(cer.Response),
	}
}

func ClientEventResponseFromWire(w WireClientEventResponse) (ClientEventResponse, error) {
	resp, err := ClientResponseFromWire(w.Response)
	if err != nil {
		return ClientEventResponse{}, err
	}
	return ClientEventResponse{Register: EventRegisterFromWire(w.Register), Response: resp}, nil
}
