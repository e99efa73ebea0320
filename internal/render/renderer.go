// Package render turns scene snapshots into traced frames. A Renderer keeps
// only the newest request alive: starting a render cancels the one in flight.
package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/logging"
	"github.com/san-kum/efield/internal/scene"
	"go.uber.org/zap"
)

var ErrSuperseded = errors.New("render: superseded by a newer render")

// Frame is the result of one render cycle.
type Frame struct {
	Seq     uint64
	Lines   []field.ChargeLines
	Charges []field.Charge
	Params  field.Params
	Elapsed time.Duration
}

func (f *Frame) LineCount() int { return field.CountLines(f.Lines) }

// Paths flattens the frame's lines in charge order.
func (f *Frame) Paths() []*field.Path {
	out := make([]*field.Path, 0, f.LineCount())
	for _, cl := range f.Lines {
		out = append(out, cl.Paths...)
	}
	return out
}

type Renderer struct {
	workers int
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelCauseFunc

	// one slot: at most one render traces at a time
	busy chan struct{}
}

// New returns a renderer tracing up to workers lines at once. A nil logger
// uses the global one.
func New(workers int, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = logging.Get()
	}
	return &Renderer{
		workers: workers,
		logger:  logger.Named("render"),
		busy:    make(chan struct{}, 1),
	}
}

// Render traces snap. Any render still in flight is canceled and returns
// ErrSuperseded. Cancelling ctx returns its error.
func (r *Renderer) Render(ctx context.Context, snap scene.Snapshot) (*Frame, error) {
	rctx, cancel := context.WithCancelCause(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel(ErrSuperseded)
	}
	r.seq++
	seq := r.seq
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.seq == seq {
			r.cancel = nil
		}
		r.mu.Unlock()
		cancel(nil)
	}()

	select {
	case r.busy <- struct{}{}:
	case <-rctx.Done():
		return nil, r.abandoned(rctx, seq)
	}
	defer func() { <-r.busy }()

	if err := rctx.Err(); err != nil {
		return nil, r.abandoned(rctx, seq)
	}

	start := time.Now()
	lines, err := field.PlanContext(rctx, snap.Charges, snap.Params, r.workers)
	if err != nil {
		if rctx.Err() != nil {
			return nil, r.abandoned(rctx, seq)
		}
		r.logger.Warn("render failed", zap.Uint64("seq", seq), zap.Error(err))
		return nil, fmt.Errorf("render: %w", err)
	}

	frame := &Frame{
		Seq:     seq,
		Lines:   lines,
		Charges: snap.Charges,
		Params:  snap.Params,
		Elapsed: time.Since(start),
	}
	r.logger.Debug("render complete",
		zap.Uint64("seq", seq),
		zap.Int("charges", len(snap.Charges)),
		zap.Int("lines", frame.LineCount()),
		zap.Duration("elapsed", frame.Elapsed),
	)
	return frame, nil
}

func (r *Renderer) abandoned(ctx context.Context, seq uint64) error {
	err := context.Cause(ctx)
	if errors.Is(err, ErrSuperseded) {
		r.logger.Debug("render superseded", zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	return err
}

// Cancel stops the render in flight, if any.
func (r *Renderer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel(context.Canceled)
		r.cancel = nil
	}
}

// Seq returns the sequence number of the most recent request.
func (r *Renderer) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}
