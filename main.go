package main

import (
	"flag"
	"log/slog"
	"os"
)

func main() {
	cfg, err := ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	world := NewWorld(cfg.MapWidth, cfg.MapHeight, cfg.FoodTarget)
	sessions := NewSessionTable()

	srv, err := NewServer(cfg, world, sessions, logger)
	if err != nil {
		logger.Error("failed to bind game socket", "addr", cfg.ListenAddr, "err", err)
		os.Exit(1)
	}
	defer srv.Close()

	stop := make(chan struct{})

	if cfg.DebugListen != "" {
		bridge := NewDebugBridge(cfg.DebugListen, srv.Snapshots(), logger)
		go bridge.Start(stop)
	}

	logger.Info("kittens.io game server starting", "listen", cfg.ListenAddr, "width", cfg.MapWidth, "height", cfg.MapHeight)
	srv.Run(stop)
}
