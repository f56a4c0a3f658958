package commands

import (
	"log/slog"

	"esade-news/pkg/config"
	"esade-news/pkg/logger"
	"esade-news/pkg/services"

	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a .yml, .toml or .json config file",
		EnvVars: []string{"ESADE_CONFIG"},
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "content backend base URL (overrides CONTENT_BASE_URL)",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "per-request timeout against the backend",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
	}
)

var commonFlags = []cli.Flag{configFlag, backendFlag, timeoutFlag, logLevelFlag}

// setup loads configuration, applies flag overrides and builds the logger and
// content client shared by every command.
func setup(c *cli.Context) (*config.Config, *slog.Logger, *services.ContentClient, error) {
	cfg, err := config.Read(c.String(configFlag.Name))
	if err != nil {
		return nil, nil, nil, err
	}
	if c.IsSet(backendFlag.Name) {
		cfg.ContentBaseURL = c.String(backendFlag.Name)
	}
	if c.IsSet(timeoutFlag.Name) {
		cfg.RequestTimeout = c.Duration(timeoutFlag.Name)
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = c.String(logLevelFlag.Name)
	}
	if c.IsSet(addrFlag.Name) {
		cfg.ListenAddr = c.String(addrFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(c.App.ErrWriter, cfg.LogLevel)
	client := services.NewContentClient(cfg.ContentBaseURL, cfg.NodePath, cfg.RequestTimeout, cfg.MaxBodyBytes, log)
	return cfg, log, client, nil
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	out := make([]cli.Flag, 0, len(commonFlags)+len(flags))
	out = append(out, commonFlags...)
	return append(out, flags...)
}
