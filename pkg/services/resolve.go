package services

import (
	"context"
	"log/slog"

	"esade-news/pkg/models"
	"esade-news/pkg/routes"
)

// ArticleResolver loads the article view for a navigation before rendering.
// Each call gets its own controller, so concurrent visitors never share a view.
func ArticleResolver(fetcher Fetcher, log *slog.Logger) routes.ResolveFunc {
	return func(ctx context.Context, path string, _ routes.Params) (*models.ContentView, error) {
		ctrl := NewController(fetcher, log)
		req, err := ctrl.Navigate(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := req.Wait(); err != nil {
			return nil, err
		}
		view := ctrl.View()
		return &view, nil
	}
}

func ArticleRoute(fetcher Fetcher, log *slog.Logger, template string) routes.Route {
	if template == "" {
		template = routes.ArticleTemplate
	}
	return routes.Route{
		Pattern:    routes.ArticlePattern,
		Template:   template,
		Controller: routes.ArticleController,
		Resolve:    ArticleResolver(fetcher, log),
	}
}
