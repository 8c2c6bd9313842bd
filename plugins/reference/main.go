package main

import (
	"context"
	"fmt"
	"os"

	pluginrpc "pomo/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// Reference notifier: appends one line per session event to a log file so
// the host integration can be exercised end to end without a desktop
// notification stack.

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *pluginrpc.NotifyRequest) (*pluginrpc.NotifyResponse, error) {
	path := os.Getenv("POMO_NOTIFY_LOG")
	if path == "" {
		path = "pomo-notifications.log"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &pluginrpc.NotifyResponse{Ack: false, Message: err.Error()}, nil
	}
	defer func() { _ = f.Close() }()
	line := fmt.Sprintf("%s %s (%dm) started=%s ended=%s note=%q\n",
		in.Event, in.Identity, in.DurationMinutes, in.StartedAt, in.EndedAt, in.Note)
	if _, err := f.WriteString(line); err != nil {
		return &pluginrpc.NotifyResponse{Ack: false, Message: err.Error()}, nil
	}
	return &pluginrpc.NotifyResponse{Ack: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
