// Command telnetlog is a small demonstration server and client for the
// telnet package: it accepts (or dials) a connection, logs every byte the
// Parser and Negotiator see, and negotiates a handful of starter options.
package main

import (
	"flag"
	"log"
	"net"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a telnetlog config file")
	dial := flag.String("dial", "", "dial this address as a client instead of listening")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("telnetlog: %v", err)
	}
	if *dial != "" {
		cfg.Dial.Addr = *dial
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("telnetlog: %v", err)
	}
	defer logger.Sync()

	lipgloss.EnableLegacyWindowsANSI(os.Stdout)
	lipgloss.EnableLegacyWindowsANSI(os.Stdin)

	if cfg.Dial.Addr != "" {
		runClient(cfg, logger)
		return
	}
	runServer(cfg, logger)
}

func runClient(cfg Config, logger *zap.Logger) {
	conn, err := net.DialTimeout("tcp", cfg.Dial.Addr, cfg.ConnectTimeout)
	if err != nil {
		logger.Fatal("dial failed", zap.String("addr", cfg.Dial.Addr), zap.Error(err))
	}

	s, err := newSession(conn, logger, cfg)
	if err != nil {
		logger.Fatal("building session failed", zap.Error(err))
	}
	s.run()
}

func runServer(cfg Config, logger *zap.Logger) {
	ln, err := net.Listen("tcp", cfg.Listen.Addr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", cfg.Listen.Addr), zap.Error(err))
	}
	logger.Info("listening", zap.String("addr", cfg.Listen.Addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Warn("accept failed", zap.Error(err))
			continue
		}

		s, err := newSession(conn, logger, cfg)
		if err != nil {
			logger.Warn("building session failed", zap.Error(err))
			conn.Close()
			continue
		}
		go s.run()
	}
}
