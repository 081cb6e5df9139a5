package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/deonlabs/clean-session/pkg/wire"
)

// handler implements rpc.ServerEventHandler over a terminal: every prompt is
// printed and the matching response is read back from stdin.
type handler struct {
	reader *bufio.Reader
}

func newHandler(reader *bufio.Reader) *handler {
	return &handler{reader: reader}
}

func (h *handler) JoinInfo(_ context.Context, sid wire.SessionID, uid wire.UserID, userName string) error {
	fmt.Printf("\n>> %s (user %d) joined session %d\n", userName, uid, sid)
	return nil
}

func (h *handler) Ping(_ context.Context, text string) (string, error) {
	fmt.Printf("\n>> ping: %s\n", text)
	return text, nil
}

func (h *handler) RollDice(_ context.Context, sides, count uint8) ([]uint8, error) {
	fmt.Printf("\n>> guess %d rolls of a %d-sided die, space separated: ", count, sides)
	fields := h.readFields(int(count))
	guess := make([]uint8, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			fmt.Printf("  (ignoring unparseable guess %q)\n", f)
			continue
		}
		guess = append(guess, uint8(n))
	}
	return guess, nil
}

func (h *handler) FlipCoin(_ context.Context, count uint8) ([]wire.Coin, error) {
	fmt.Printf("\n>> guess %d coin flips (h/t), space separated: ", count)
	fields := h.readFields(int(count))
	guess := make([]wire.Coin, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "h", "heads":
			guess = append(guess, wire.CoinHeads)
		case "t", "tails":
			guess = append(guess, wire.CoinTails)
		default:
			fmt.Printf("  (ignoring unparseable guess %q)\n", f)
		}
	}
	return guess, nil
}

func (h *handler) Winner(_ context.Context, uid wire.UserID, userName string) error {
	fmt.Printf("\n>> %s (user %d) won the round\n", userName, uid)
	return nil
}

func (h *handler) TryAgain(_ context.Context) (bool, error) {
	fmt.Print("\n>> play again? (y/n): ")
	line := h.readLine()
	return strings.ToLower(line) == "y", nil
}

func (h *handler) Error(_ context.Context, text string) error {
	fmt.Printf("\n>> server error: %s\n", text)
	return nil
}

func (h *handler) readLine() string {
	line, _ := h.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (h *handler) readFields(want int) []string {
	fields := strings.Fields(h.readLine())
	if len(fields) > want {
		fields = fields[:want]
	}
	return fields
}
