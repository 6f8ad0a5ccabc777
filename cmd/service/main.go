package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/straviz/internal"
	"github.com/2beens/straviz/internal/config"
	"github.com/2beens/straviz/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment: development or production")
	configPath := flag.String("config", "./config.toml", "path to the toml config file")
	logFileName := flag.String("logfile", "straviz.log", "log file name, empty to skip file logging")
	logToStdout := flag.Bool("o", true, "additionally write logs to stdout")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Printf("failed to load config: %s\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   logFileNamePath(cfg.LogsPath, *logFileName),
		LogToStdout:   *logToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.Environment == "production",
		Environment:   cfg.Environment,
	})

	log.Infof("starting straviz service, environment: %s", cfg.Environment)

	versionInfo := tryGetLastCommitHash()
	if versionInfo != "" {
		log.Debugf("server version: %s", versionInfo)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:         cfg,
		VersionInfo:    versionInfo,
		TracingEnabled: cfg.Environment == "production",
	})
	if err != nil {
		log.Errorf("failed to create server: %s", err)
		cancel()
		os.Exit(1)
	}

	go server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()
	server.GracefulShutdown()
}

func logFileNamePath(logsPath, logFileName string) string {
	if logFileName == "" {
		return ""
	}
	if logsPath == "" {
		return logFileName
	}
	return strings.TrimSuffix(logsPath, "/") + "/" + logFileName
}

// tryGetLastCommitHash returns the current commit hash, or empty string
// when not running from a git checkout.
func tryGetLastCommitHash() string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
