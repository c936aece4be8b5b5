package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/config"
	"github.com/vovakirdan/mio-arcade/internal/platform/tui"
	"github.com/vovakirdan/mio-arcade/internal/stream"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagStreamAddr  string
	flagIdleTimeout int
	flagServeTrace  bool
)

// streamBacklog is how many messages a new stream client receives on
// connect.
const streamBacklog = 64

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the event stream",
	Long: `Start an SSH server where every connection gets the game picker and the
player. Results of all users go to one database.

Every play is also published on a websocket stream at
ws://<stream address>/events as JSON events and frame snapshots.
Pass --stream "" to disable it.

Examples:
  mio serve                           # SSH on :23234, stream on :8765
  mio serve --ssh :2222               # Listen on port 2222
  mio serve --host-key ./my_host_key  # Use specific host key
  mio serve --stream ""               # SSH only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().StringVar(&flagStreamAddr, "stream", "", "Event stream address (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
	serveCmd.Flags().BoolVar(&flagServeTrace, "trace", false, "Record a frame trace of every play")
}

func runServe(cmd *cobra.Command, _ []string) error {
	scfg := tui.DefaultSSHServerConfig()
	scfg.Address = cfg.SSH.Address
	scfg.HostKeyPath = config.ExpandPath(cfg.SSH.HostKey)
	scfg.DBPath = cfg.Storage.DBPath
	scfg.IdleTimeout = cfg.IdleTimeout()
	scfg.Engine = cfg.EngineConfig()
	scfg.Engine.Logger = newLogger("engine")
	if cfg.Trace.Enabled || flagServeTrace {
		scfg.TraceDir = config.ExpandPath(cfg.Trace.Dir)
	}

	if flagSSHAddr != "" {
		scfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		scfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		scfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	streamAddr := cfg.Stream.Address
	if cmd.Flags().Changed("stream") {
		streamAddr = flagStreamAddr
	}

	// Imported saves are read through this store; results go through the
	// server's own.
	store, err := openStore(false)
	if err != nil {
		return err
	}
	lib := openLibrary(store, newLogger("mio"))

	var broadcaster *stream.Broadcaster
	if streamAddr != "" {
		broadcaster = stream.NewBroadcaster(streamBacklog)
	}

	server, err := tui.NewSSHServer(scfg, lib, broadcaster)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return fmt.Errorf("cannot create server: %w", err)
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streamErr := make(chan error, 1)
	if broadcaster != nil {
		go func() {
			err := stream.Serve(ctx, streamAddr, broadcaster, newLogger("mio-stream"))
			if err != nil {
				stop() // take the SSH server down with the stream
			}
			streamErr <- err
		}()
	} else {
		close(streamErr)
	}

	fmt.Printf("Starting mio SSH server on %s with %d games\n", server.Addr(), len(lib.List()))
	if broadcaster != nil {
		fmt.Printf("Event stream on ws://%s/events\n", streamAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	sshErr := server.ListenAndServe(ctx)
	stop()
	if err := <-streamErr; err != nil {
		return err
	}
	return sshErr
}
