// Package classifier manages the lifecycle of an entity extraction model and
// exposes asynchronous classification over it
package classifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"entitylens/internal/core/entity"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Backend opens the extraction model; Open may be slow (model load)
type Backend interface {
	Open(ctx context.Context) (Handle, error)
}

// Handle is a loaded model; Annotate calls are serialized by the Client
type Handle interface {
	Annotate(ctx context.Context, text string) (entity.Result, error)
	Close() error
}

// BackendFunc adapts a function to Backend
type BackendFunc func(ctx context.Context) (Handle, error)

// Open implements Backend
func (f BackendFunc) Open(ctx context.Context) (Handle, error) { return f(ctx) }

// Outcome is the single value delivered on a Classify channel
type Outcome struct {
	Result entity.Result
	Err    error
}

// Classifier is what the pipeline depends on
type Classifier interface {
	Prepare(ctx context.Context) error
	Classify(ctx context.Context, text string) <-chan Outcome
	Close() error
}

// Options tunes a Client
type Options struct {
	// Concurrency is how many Annotate calls may run on the handle at once, default 1
	Concurrency int64
}

// Client is the managed Classifier over a Backend
type Client struct {
	backend Backend
	weight  int64
	sem     *semaphore.Weighted
	group   singleflight.Group

	mu     sync.Mutex
	handle Handle
	closed bool
}

// New returns a Client that opens backend lazily on Prepare
func New(backend Backend, opts Options) *Client {
	w := opts.Concurrency
	if w < 1 {
		w = 1
	}
	return &Client{backend: backend, weight: w, sem: semaphore.NewWeighted(w)}
}

// Prepare loads the model once; concurrent callers share the same load and a
// caller whose ctx ends stops waiting without cancelling the load
// a failed load is not cached so a later Prepare retries
func (c *Client) Prepare(ctx context.Context) error {
	if c.current() != nil {
		return nil
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return perr.ModelUnavailablef("classifier: closed")
	}

	ch := c.group.DoChan("prepare", func() (any, error) {
		if h := c.current(); h != nil {
			return h, nil
		}
		h, err := c.backend.Open(context.WithoutCancel(ctx))
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeModelUnavailable, "classifier: model unavailable")
		}
		if h == nil {
			return nil, perr.ModelUnavailablef("classifier: backend returned no model")
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			_ = h.Close()
			return nil, perr.ModelUnavailablef("classifier: closed")
		}
		c.handle = h
		logger.Named("classifier").Debug().Int64("concurrency", c.weight).Msg("model ready")
		return h, nil
	})
	select {
	case r := <-ch:
		return r.Err
	case <-ctx.Done():
		// the shared load keeps going; only this caller gives up
		return perr.Wrap(ctx.Err(), perr.ErrorCodeCanceled, "classifier: prepare abandoned")
	}
}

// Ready reports whether a model handle is loaded
func (c *Client) Ready() bool { return c.current() != nil }

// Ping prepares the model, used by readiness probes
func (c *Client) Ping(ctx context.Context) error { return c.Prepare(ctx) }

func (c *Client) current() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.handle
}

// Classify starts classification of text and returns immediately
// exactly one Outcome is sent, then the channel is closed
func (c *Client) Classify(ctx context.Context, text string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		res, err := c.classify(ctx, text)
		out <- Outcome{Result: res, Err: err}
	}()
	return out
}

func (c *Client) classify(ctx context.Context, text string) (res entity.Result, err error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, classificationFailed(err)
	}
	defer c.sem.Release(1)

	c.mu.Lock()
	h, closed := c.handle, c.closed
	c.mu.Unlock()
	switch {
	case closed:
		return nil, classificationFailed(errClosed)
	case h == nil:
		return nil, classificationFailed(errNotPrepared)
	}

	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, classificationFailed(fmt.Errorf("backend panic: %v", rec))
		}
	}()
	raw, err := h.Annotate(ctx, text)
	if err != nil {
		return nil, classificationFailed(err)
	}
	return Normalize(text, raw), nil
}

var (
	errClosed      = errors.New("classifier closed")
	errNotPrepared = errors.New("model not prepared")
)

func classificationFailed(cause error) error {
	return perr.Wrap(cause, perr.ErrorCodeClassification, "classification failed")
}

// Close waits for in-flight classifications and releases the model
// it is safe to call more than once
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	// drain: no new Annotate can start once closed is set
	if err := c.sem.Acquire(context.Background(), c.weight); err != nil {
		return err
	}
	defer c.sem.Release(c.weight)

	c.mu.Lock()
	h := c.handle
	c.handle = nil
	c.mu.Unlock()
	if h == nil {
		return nil
	}
	if err := h.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "classifier: close model")
	}
	return nil
}

// Normalize orders spans by start offset and repairs span text and offsets against input
// spans with unusable offsets keep their text and report -1 offsets
func Normalize(input string, r entity.Result) entity.Result {
	if len(r) == 0 {
		return entity.Result{}
	}
	out := make(entity.Result, len(r))
	for i, s := range r {
		start, end := s.Start(), s.End()
		valid := start >= 0 && end >= start && end <= len(input)
		switch {
		case !valid:
			s = s.WithOffsets(-1, -1)
		case s.Text() == "":
			s = s.WithText(input[start:end])
		default:
			s = s.WithOffsets(start, end)
		}
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Start(), out[j].Start()
		// spans without offsets go last, keeping their relative order
		if a < 0 || b < 0 {
			return a >= 0 && b < 0
		}
		return a < b
	})
	return out
}

var _ Classifier = (*Client)(nil)
