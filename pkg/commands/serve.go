package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"esade-news/pkg/routes"
	"esade-news/pkg/server"
	"esade-news/pkg/services"

	"github.com/urfave/cli/v2"
)

var addrFlag = &cli.StringFlag{
	Name:  "addr",
	Usage: "listen address (overrides LISTEN_ADDR)",
}

var ServeCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve article pages rendered from the content backend",
	Flags: withCommon(addrFlag),
	Action: func(c *cli.Context) error {
		cfg, log, client, err := setup(c)
		if err != nil {
			return err
		}
		slog.SetDefault(log)

		table := routes.NewTable()
		if err := table.Register(services.ArticleRoute(client, log, cfg.Template)); err != nil {
			return err
		}

		srv, err := server.New(cfg, table, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}
