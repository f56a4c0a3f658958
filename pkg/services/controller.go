package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"esade-news/pkg/models"
)

// Request is the handle for one navigation. It finishes exactly once.
type Request struct {
	NodeID string
	Path   string

	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	view   models.ContentView
	loaded bool
}

// Cancel aborts the underlying fetch. The view is left untouched.
func (r *Request) Cancel() { r.cancel() }

func (r *Request) Done() <-chan struct{} { return r.done }

// Wait blocks until the request finishes and returns its outcome.
func (r *Request) Wait() error {
	<-r.done
	return r.err
}

// Err returns the outcome once finished, nil while still in flight.
func (r *Request) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// View returns the view this request wrote, if it finished successfully.
func (r *Request) View() (models.ContentView, bool) {
	select {
	case <-r.done:
		return r.view, r.loaded
	default:
		return models.ContentView{}, false
	}
}

func (r *Request) finish(err error) {
	r.err = err
	close(r.done)
}

// Controller owns one view and loads nodes into it on navigation.
// Only the most recently issued navigation may write the view.
type Controller struct {
	fetcher Fetcher
	log     *slog.Logger

	mu       sync.Mutex
	view     models.ContentView
	seq      uint64
	inflight *Request
}

func NewController(fetcher Fetcher, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{fetcher: fetcher, log: log}
	log.Debug("content controller created", "view", c.view)
	return c
}

// Navigate starts loading the node named by path and supersedes any
// navigation still in flight. Path errors are returned before any request is issued.
func (c *Controller) Navigate(ctx context.Context, path string) (*Request, error) {
	nid, err := NodeID(path)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.seq++
	req := &Request{
		NodeID: nid,
		Path:   path,
		seq:    c.seq,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	prev := c.inflight
	c.inflight = req
	c.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}

	go c.load(reqCtx, req)
	return req, nil
}

func (c *Controller) load(ctx context.Context, req *Request) {
	defer req.cancel()

	article, err := c.fetcher.FetchNode(ctx, req.NodeID)

	c.mu.Lock()
	current := c.seq == req.seq
	if current {
		c.inflight = nil
		if err == nil {
			c.view = models.ContentView{
				NodeID:      article.NodeID,
				Title:       article.Title,
				Body:        article.Body,
				HideContent: true,
			}
			req.view = c.view
			req.loaded = true
		}
	}
	c.mu.Unlock()

	switch {
	case !current:
		c.log.Debug("navigation superseded", "nid", req.NodeID, "path", req.Path)
		err = ErrSuperseded
	case err != nil && !errors.Is(err, context.Canceled):
		c.log.Warn("node load failed", "nid", req.NodeID, "path", req.Path, "error", err)
	}
	req.finish(err)
}

func (c *Controller) View() models.ContentView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Pending reports whether a navigation is still in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}
