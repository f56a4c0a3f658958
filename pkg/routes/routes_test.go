package routes

import (
	"context"
	"testing"

	"esade-news/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable()
	require.NoError(t, table.Register(Route{
		Pattern:    ArticlePattern,
		Template:   ArticleTemplate,
		Controller: ArticleController,
	}))
	return table
}

func TestMatch_ArticleWildcard(t *testing.T) {
	table := articleTable(t)

	tests := map[string]string{
		"/article/anything":        "anything",
		"/article/some/node/123":   "some/node/123",
		"/article/a/b/1/":          "a/b/1/",
		"/article/news/2024/hello": "news/2024/hello",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			route, params, ok := table.Match(path)
			require.True(t, ok)
			assert.Equal(t, ArticleTemplate, route.Template)
			assert.Equal(t, ArticleController, route.Controller)
			assert.Equal(t, want, params["name"])
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	table := articleTable(t)

	for _, path := range []string{"/article", "/article/", "/", "/articles/x", "/news/article/x"} {
		t.Run(path, func(t *testing.T) {
			_, _, ok := table.Match(path)
			assert.False(t, ok)
		})
	}
}

func TestMatch_NamedAndLiteralSegments(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Pattern: "/node/:id/edit"}))

	_, params, ok := table.Match("/node/42/edit")
	require.True(t, ok)
	assert.Equal(t, "42", params["id"])

	_, _, ok = table.Match("/node//edit")
	assert.False(t, ok)
	_, _, ok = table.Match("/node/42/edit/more")
	assert.False(t, ok)
}

func TestMatch_FirstRegisteredWins(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Pattern: "/article/featured", Template: "featured.html"}))
	require.NoError(t, table.Register(Route{Pattern: ArticlePattern, Template: ArticleTemplate}))

	route, _, ok := table.Match("/article/featured")
	require.True(t, ok)
	assert.Equal(t, "featured.html", route.Template)

	route, _, ok = table.Match("/article/other")
	require.True(t, ok)
	assert.Equal(t, ArticleTemplate, route.Template)
}

func TestRegister_RejectsBadPatterns(t *testing.T) {
	table := NewTable()

	assert.Error(t, table.Register(Route{Pattern: ""}))
	assert.Error(t, table.Register(Route{Pattern: "article/:name"}))
	assert.Error(t, table.Register(Route{Pattern: "/article/:name*/more"}))
	assert.Error(t, table.Register(Route{Pattern: "/article/:"}))
	assert.Empty(t, table.Routes())
}

func TestRegister_Duplicate(t *testing.T) {
	table := articleTable(t)
	assert.Error(t, table.Register(Route{Pattern: ArticlePattern}))
	assert.Len(t, table.Routes(), 1)
}

func TestRegister_AfterFreeze(t *testing.T) {
	table := articleTable(t)
	table.Freeze()

	err := table.Register(Route{Pattern: "/other"})
	assert.ErrorIs(t, err, ErrFrozen)
	assert.Len(t, table.Routes(), 1)
}

func TestResolveIsCarriedByRoute(t *testing.T) {
	calls := 0
	table := NewTable()
	require.NoError(t, table.Register(Route{
		Pattern: ArticlePattern,
		Resolve: func(_ context.Context, path string, params Params) (*models.ContentView, error) {
			calls++
			return &models.ContentView{Title: params["name"]}, nil
		},
	}))

	route, params, ok := table.Match("/article/anything")
	require.True(t, ok)
	view, err := route.Resolve(context.Background(), "/article/anything", params)
	require.NoError(t, err)
	assert.Equal(t, "anything", view.Title)
	assert.Equal(t, 1, calls)
}
