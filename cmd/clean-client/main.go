// Command clean-client is the interactive terminal client: host or join a
// session, then play dice or coin rounds by answering prompts.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/deonlabs/clean-session/pkg/rpc"
	"github.com/deonlabs/clean-session/pkg/wire"
)

const defaultAddress = "127.0.0.1:5555"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var address, userName string
	var uid uint64

	cmd := &cobra.Command{
		Use:   "clean-client",
		Short: "Host, list, and join dice/coin sessions over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(address, wire.UserID(uid), userName)
		},
	}

	cmd.Flags().StringVar(&address, "address", defaultAddress, "server address")
	cmd.Flags().Uint64Var(&uid, "uid", 0, "this client's user ID")
	cmd.Flags().StringVar(&userName, "name", "", "this client's display name")
	return cmd
}

func run(address string, uid wire.UserID, userName string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cc, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	defer cc.Close()

	client := rpc.NewClient(cc, logger)
	cli := &terminal{client: client, reader: bufio.NewReader(os.Stdin), uid: uid, userName: userName}

	fmt.Printf("connected to %s as %q (user %d)\n", address, userName, uid)
	cli.printHelp()

	for {
		fmt.Print("\n> ")
		cmd := strings.ToLower(strings.TrimSpace(cli.readLine()))
		switch cmd {
		case "h":
			cli.hostSession()
		case "l":
			cli.listSessions()
		case "j":
			cli.joinSession()
		case "q":
			fmt.Println("bye")
			return nil
		case "?", "":
			cli.printHelp()
		default:
			fmt.Printf("unknown command %q\n", cmd)
			cli.printHelp()
		}
	}
}

// terminal holds the interactive session's reusable state between commands.
type terminal struct {
	client   *rpc.Client
	reader   *bufio.Reader
	uid      wire.UserID
	userName string
}

func (t *terminal) printHelp() {
	fmt.Println("commands: h (host)  l (list)  j (join)  q (quit)  ? (help)")
}

func (t *terminal) hostSession() {
	ctx := context.Background()

	fmt.Print("session type (dice/coin): ")
	typ, err := parseSessionType(t.readLine())
	if err != nil {
		fmt.Println(err)
		return
	}
	count := t.readUint8("player count: ")

	sd, err := t.client.HostSession(ctx, typ, count)
	if err != nil {
		fmt.Printf("host failed: %v\n", err)
		return
	}
	fmt.Printf("hosted session %d (%s, %d players)\n", sd.SessionID, sd.Type, count)
}

func (t *terminal) listSessions() {
	sessions, err := t.client.ListSessions(context.Background())
	if err != nil {
		fmt.Printf("list failed: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions")
		return
	}
	for _, sd := range sessions {
		fmt.Printf("  session %d: %s, users=%s\n", sd.SessionID, sd.Type, strings.Join(sd.Users, ", "))
	}
}

func (t *terminal) joinSession() {
	fmt.Print("session id: ")
	sid, err := strconv.ParseUint(t.readLine(), 10, 64)
	if err != nil {
		fmt.Printf("invalid session id: %v\n", err)
		return
	}

	ctx := context.Background()
	if err := t.client.JoinSession(ctx, wire.SessionID(sid), t.uid, t.userName); err != nil {
		fmt.Printf("join failed: %v\n", err)
		return
	}
	fmt.Println("joined, listening for prompts (Ctrl-C to stop)...")

	h := newHandler(t.reader)
	if err := t.client.ListenEvents(ctx, wire.SessionID(sid), t.uid, h); err != nil {
		fmt.Printf("event stream ended: %v\n", err)
	}
}

func (t *terminal) readLine() string {
	line, _ := t.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (t *terminal) readUint8(prompt string) uint8 {
	for {
		fmt.Print(prompt)
		val, err := strconv.ParseUint(t.readLine(), 10, 8)
		if err != nil {
			fmt.Println("invalid number, try again")
			continue
		}
		return uint8(val)
	}
}

func parseSessionType(s string) (wire.SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dice":
		return wire.SessionTypeDice, nil
	case "coin":
		return wire.SessionTypeCoin, nil
	default:
		return 0, fmt.Errorf("unknown session type %q (want dice or coin)", s)
	}
}
