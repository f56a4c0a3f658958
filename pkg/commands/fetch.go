package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"esade-news/pkg/models"
	"esade-news/pkg/services"

	"github.com/urfave/cli/v2"
)

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "print the view as JSON",
}

var FetchCommand = &cli.Command{
	Name:      "fetch",
	Usage:     "Load one article path and print its view",
	ArgsUsage: "<article path>",
	Flags:     withCommon(jsonFlag),
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errors.New("fetch expects exactly one article path")
		}
		_, log, client, err := setup(c)
		if err != nil {
			return err
		}

		ctrl := services.NewController(client, log)
		req, err := ctrl.Navigate(c.Context, c.Args().First())
		if err != nil {
			return err
		}
		if err := req.Wait(); err != nil {
			return err
		}
		return printView(c.App.Writer, ctrl.View(), c.Bool(jsonFlag.Name))
	},
}

func printView(w io.Writer, view models.ContentView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	_, err := fmt.Fprintf(w, "[%s] %s\n\n%s\n", view.NodeID, view.Title, view.Body)
	return err
}
