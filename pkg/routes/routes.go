package routes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"esade-news/pkg/models"
)

const (
	ArticlePattern    = "/article/:name*"
	ArticleTemplate   = "news.html"
	ArticleController = "mainController"
)

var ErrFrozen = errors.New("routes: table is frozen")

// Params holds the values captured by a route pattern.
type Params map[string]string

// ResolveFunc loads the data a route needs before its template is rendered.
type ResolveFunc func(ctx context.Context, path string, params Params) (*models.ContentView, error)

type Route struct {
	Pattern    string
	Template   string
	Controller string
	Resolve    ResolveFunc
}

type segment struct {
	literal string
	param   string
	rest    bool
}

type entry struct {
	route    Route
	segments []segment
}

// Table is an ordered set of routes. Routes are registered once at startup;
// after Freeze the table is read-only and safe for concurrent Match calls.
type Table struct {
	entries []entry
	frozen  bool
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Register(r Route) error {
	if t.frozen {
		return ErrFrozen
	}
	segs, err := compile(r.Pattern)
	if err != nil {
		return err
	}
	for _, e := range t.entries {
		if e.route.Pattern == r.Pattern {
			return fmt.Errorf("routes: duplicate pattern %q", r.Pattern)
		}
	}
	t.entries = append(t.entries, entry{route: r, segments: segs})
	return nil
}

func (t *Table) Freeze() {
	t.frozen = true
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.route
	}
	return out
}

// Match returns the first route whose pattern matches path.
func (t *Table) Match(path string) (Route, Params, bool) {
	for _, e := range t.entries {
		if params, ok := match(e.segments, path); ok {
			return e.route, params, true
		}
	}
	return Route{}, nil, false
}

func compile(pattern string) ([]segment, error) {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("routes: pattern %q must start with /", pattern)
	}
	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := make([]segment, 0, len(parts))
	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			segs = append(segs, segment{literal: part})
			continue
		}
		name := part[1:]
		rest := strings.HasSuffix(name, "*")
		if rest {
			if i != len(parts)-1 {
				return nil, fmt.Errorf("routes: wildcard %q must be the last segment of %q", part, pattern)
			}
			name = strings.TrimSuffix(name, "*")
		}
		if name == "" {
			return nil, fmt.Errorf("routes: empty parameter name in %q", pattern)
		}
		segs = append(segs, segment{param: name, rest: rest})
	}
	return segs, nil
}

func match(segs []segment, path string) (Params, bool) {
	params := Params{}
	rest := strings.TrimPrefix(path, "/")
	for _, seg := range segs {
		if seg.rest {
			if rest == "" {
				return nil, false
			}
			params[seg.param] = rest
			return params, true
		}
		part, remainder, _ := strings.Cut(rest, "/")
		switch {
		case seg.param != "":
			if part == "" {
				return nil, false
			}
			params[seg.param] = part
		case part != seg.literal:
			return nil, false
		}
		rest = remainder
	}
	if rest != "" {
		return nil, false
	}
	return params, true
}
