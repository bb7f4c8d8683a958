package landmarks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/log"
)

// loopGap separates the last frame of a pass from the first of the next.
const loopGap = time.Second / 30

// Feed paces a Source against a session clock. It is driven from the game
// loop and is not safe for concurrent use.
type Feed struct {
	open Opener
	src  Source
	loop bool

	base    time.Duration // session time of the current pass's t=0
	last    time.Duration // session time of the last delivered frame
	pending *Frame
	passLen int
	done    bool

	skipped int
}

// NewFeed opens the first pass of the source.
func NewFeed(open Opener, loop bool) (*Feed, error) {
	src, err := open()
	if err != nil {
		return nil, err
	}
	return &Feed{open: open, src: src, loop: loop}, nil
}

// Due returns every frame whose timestamp is at or before now, rebased onto
// the session clock. Malformed frames are skipped and counted.
func (f *Feed) Due(ctx context.Context, now time.Duration) []Frame {
	var out []Frame
	for !f.done {
		if f.pending == nil {
			fr, err := f.src.Next(ctx)
			switch {
			case err == nil:
				fr.At += f.base
				f.pending = &fr
			case errors.Is(err, ErrMalformedFrame):
				f.skipped++
				log.Warn("skipping landmark frame", "error", err)
				continue
			case errors.Is(err, io.EOF):
				if err := f.rewind(); err != nil {
					f.finish(err)
				}
				continue
			default:
				f.finish(err)
				continue
			}
		}

		if f.pending.At > now {
			break
		}
		out = append(out, *f.pending)
		f.last = f.pending.At
		f.passLen++
		f.pending = nil
	}
	return out
}

func (f *Feed) rewind() error {
	if !f.loop {
		return io.EOF
	}
	if f.passLen == 0 {
		return fmt.Errorf("landmark source has no frames")
	}
	_ = f.src.Close()
	src, err := f.open()
	if err != nil {
		return err
	}
	f.src = src
	f.base = f.last + loopGap
	f.passLen = 0
	return nil
}

func (f *Feed) finish(err error) {
	f.done = true
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Error("landmark feed stopped", "error", err)
	}
}

// Done reports whether the feed has no more frames.
func (f *Feed) Done() bool {
	return f.done
}

// Skipped returns how many malformed frames were dropped.
func (f *Feed) Skipped() int {
	return f.skipped
}

// Close releases the source.
func (f *Feed) Close() error {
	f.done = true
	return f.src.Close()
}
