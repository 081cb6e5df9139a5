// Command clean-server hosts the session coordinator behind a gRPC
// listener, optionally wrapped for browser clients.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"

	"github.com/deonlabs/clean-session/internal/session"
	"github.com/deonlabs/clean-session/pkg/rpc"
)

const defaultAddress = "0.0.0.0:5555"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("clean-server exited")
	}
}

func newRootCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "clean-server",
		Short: "Serve session hosting, joining, and round play over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(address)
		},
	}

	cmd.Flags().StringVar(&address, "address", defaultAddress, "listen address")
	return cmd
}

func run(address string) error {
	logger := newLogger()

	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	coordinator := session.NewCoordinator(logger)
	adapter := rpc.NewAdapter(coordinator, logger)

	grpcServer := grpc.NewServer()
	rpc.RegisterCleanServer(grpcServer, adapter)

	wrapped := grpcweb.WrapServer(grpcServer)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wrapped.IsGrpcWebRequest(r) || wrapped.IsAcceptableGrpcCorsRequest(r) {
			wrapped.ServeHTTP(w, r)
			return
		}
		grpcServer.ServeHTTP(w, r)
	})

	// h2c lets native gRPC clients (HTTP/2, cleartext) and grpc-web
	// clients (HTTP/1.1) share the one listening address spec.md §6
	// requires ("native framing and a browser-compatible wrapping").
	httpServer := &http.Server{
		Addr:    address,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	logger.Info().Str("address", address).Msg("clean-server listening")
	return httpServer.Serve(lis)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("CLEAN_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
