// Package worker runs JSON operations off the caller's goroutine.
//
// A Worker accepts requests, tags each with a random id and hands it to a
// small pool of goroutines. Callers block on a per-request channel until the
// matching response arrives, their context ends or the worker is closed.
// Every pending request is settled exactly once.
package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// ErrClosed settles requests that were still pending when the worker closed,
// and rejects requests made afterwards.
var ErrClosed = errors.New(errors.ErrCodeWorkerClosed, "worker closed")

// Worker executes Requests on background goroutines.
type Worker struct {
	requests chan Request
	done     chan struct{}
	group    errgroup.Group
	log      *logrus.Entry

	mu      sync.Mutex
	pending map[string]chan Response
	closed  bool
}

// Option configures a Worker.
type Option func(*options)

type options struct {
	concurrency int
	queue       int
}

// WithConcurrency sets the number of goroutines serving requests.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithQueue sets how many requests may wait for a free goroutine before
// Execute blocks.
func WithQueue(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queue = n
		}
	}
}

// New starts a worker. Call Close to stop it.
func New(opts ...Option) *Worker {
	o := options{concurrency: 1, queue: 16}
	for _, opt := range opts {
		opt(&o)
	}

	w := newWorker(o.queue)
	for i := 0; i < o.concurrency; i++ {
		w.group.Go(w.serve)
	}
	return w
}

func newWorker(queue int) *Worker {
	return &Worker{
		requests: make(chan Request, queue),
		done:     make(chan struct{}),
		pending:  make(map[string]chan Response),
		log:      logging.NewLogger("worker"),
	}
}

func (w *Worker) serve() error {
	for {
		select {
		case <-w.done:
			return nil
		case req := <-w.requests:
			w.settle(Handle(req))
		}
	}
}

// settle hands resp to its waiter, if the waiter is still there.
func (w *Worker) settle(resp Response) {
	w.mu.Lock()
	ch, ok := w.pending[resp.ID]
	delete(w.pending, resp.ID)
	w.mu.Unlock()

	if !ok {
		w.log.WithField("id", resp.ID).Debug("Dropping response for abandoned request")
		return
	}
	ch <- resp
}

// Execute submits an operation and waits for its result.
func (w *Worker) Execute(ctx context.Context, op OpType, payload jsonvalue.Value) (jsonvalue.Value, error) {
	req := Request{ID: uuid.NewString(), Type: op, Payload: payload}
	ch := make(chan Response, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return jsonvalue.Value{}, ErrClosed
	}
	w.pending[req.ID] = ch
	w.mu.Unlock()

	select {
	case w.requests <- req:
	case <-ctx.Done():
		w.forget(req.ID)
		return jsonvalue.Value{}, ctx.Err()
	case resp := <-ch:
		// closed before the request was queued
		return result(resp)
	}

	select {
	case resp := <-ch:
		return result(resp)
	case <-ctx.Done():
		w.forget(req.ID)
		return jsonvalue.Value{}, ctx.Err()
	}
}

func result(resp Response) (jsonvalue.Value, error) {
	if resp.Success {
		return resp.Result, nil
	}
	if resp.Code == string(errors.ErrCodeWorkerClosed) {
		return jsonvalue.Value{}, ErrClosed
	}
	return jsonvalue.Value{}, resp.Err()
}

func (w *Worker) forget(id string) {
	w.mu.Lock()
	delete(w.pending, id)
	w.mu.Unlock()
}

// Pending reports the number of requests awaiting a response.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Close stops the worker and rejects every pending request with ErrClosed.
// It waits for in-flight operations to finish and is safe to call twice.
func (w *Worker) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	rejected := len(w.pending)
	for id, ch := range w.pending {
		ch <- Response{ID: id, Error: ErrClosed.Message, Code: string(ErrClosed.Code)}
		delete(w.pending, id)
	}
	w.mu.Unlock()

	if rejected > 0 {
		w.log.WithField("pending", rejected).Debug("Rejected pending requests on close")
	}
	return w.group.Wait()
}

// Parse decodes JSON text.
func (w *Worker) Parse(ctx context.Context, text string) (jsonvalue.Value, error) {
	return w.Execute(ctx, OpParse, jsonvalue.String(text))
}

// Stringify renders v as compact JSON.
func (w *Worker) Stringify(ctx context.Context, v jsonvalue.Value) (string, error) {
	res, err := w.Execute(ctx, OpStringify, v)
	if err != nil {
		return "", err
	}
	return res.Str(), nil
}

// Beautify re-indents JSON text.
func (w *Worker) Beautify(ctx context.Context, text string, indent format.Indent) (string, error) {
	indentValue := jsonvalue.Number(float64(len(indent.Unit())))
	if indent == format.Tab {
		indentValue = jsonvalue.String("tab")
	}
	res, err := w.Execute(ctx, OpBeautify, jsonvalue.Object(
		jsonvalue.Member{Key: "text", Value: jsonvalue.String(text)},
		jsonvalue.Member{Key: "indent", Value: indentValue},
	))
	if err != nil {
		return "", err
	}
	return res.Str(), nil
}

// Minify strips insignificant whitespace from JSON text.
func (w *Worker) Minify(ctx context.Context, text string) (string, error) {
	res, err := w.Execute(ctx, OpMinify, jsonvalue.String(text))
	if err != nil {
		return "", err
	}
	return res.Str(), nil
}
