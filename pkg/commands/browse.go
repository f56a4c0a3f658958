package commands

import (
	"bufio"
	"errors"
	"strings"
	"sync"

	"esade-news/pkg/services"

	"github.com/urfave/cli/v2"
)

var BrowseCommand = &cli.Command{
	Name:  "browse",
	Usage: "Navigate one view through article paths read from stdin, one per line",
	Flags: withCommon(jsonFlag),
	Action: func(c *cli.Context) error {
		_, log, client, err := setup(c)
		if err != nil {
			return err
		}

		ctrl := services.NewController(client, log)
		asJSON := c.Bool(jsonFlag.Name)

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			out = c.App.Writer
		)

		scanner := bufio.NewScanner(c.App.Reader)
		for scanner.Scan() {
			path := strings.TrimSpace(scanner.Text())
			if path == "" {
				continue
			}
			req, err := ctrl.Navigate(c.Context, path)
			if err != nil {
				log.Warn("navigation rejected", "path", path, "error", err)
				continue
			}

			wg.Add(1)
			go func(req *services.Request) {
				defer wg.Done()
				if err := req.Wait(); err != nil {
					if !errors.Is(err, services.ErrSuperseded) {
						log.Debug("navigation finished without content", "path", req.Path, "error", err)
					}
					return
				}
				view, _ := req.View()
				mu.Lock()
				defer mu.Unlock()
				if err := printView(out, view, asJSON); err != nil {
					log.Error("write view", "error", err)
				}
			}(req)
		}

		wg.Wait()
		return scanner.Err()
	},
}
