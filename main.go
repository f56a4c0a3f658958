package main

import (
	"log"
	"os"

	"esade-news/pkg/commands"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "esade-news",
		Usage: "Render CMS article nodes as news pages",
		Commands: []*cli.Command{
			commands.ServeCommand,
			commands.FetchCommand,
			commands.BrowseCommand,
		},
	}
}

func runApp(args []string) error {
	return newApp().Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
