package landmarks

import (
	"context"
	"strings"
	"testing"
	"time"
)

const shortRecording = `{"t_ms": 0, "hands": []}
{"t_ms": 33, "hands": []}
not json
{"t_ms": 66, "hands": []}
`

func stringOpener(data string) Opener {
	return func() (Source, error) {
		return NewReplaySource(strings.NewReader(data)), nil
	}
}

func TestFeed_Paces(t *testing.T) {
	ctx := context.Background()
	feed, err := NewFeed(stringOpener(shortRecording), false)
	if err != nil {
		t.Fatal(err)
	}
	defer feed.Close()

	if got := feed.Due(ctx, 0); len(got) != 1 {
		t.Fatalf("Due(0) returned %d frames, want 1", len(got))
	}
	if got := feed.Due(ctx, 50*time.Millisecond); len(got) != 1 || got[0].At != 33*time.Millisecond {
		t.Fatalf("Due(50ms) = %+v, want the 33ms frame", got)
	}
	if feed.Done() {
		t.Fatal("feed done early")
	}
	if got := feed.Due(ctx, time.Second); len(got) != 1 {
		t.Fatalf("Due(1s) returned %d frames, want 1", len(got))
	}
	if !feed.Done() {
		t.Error("feed not done after the last frame")
	}
	if feed.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", feed.Skipped())
	}
	if got := feed.Due(ctx, 2*time.Second); len(got) != 0 {
		t.Errorf("finished feed returned %d frames", len(got))
	}
}

func TestFeed_Loops(t *testing.T) {
	feed, err := NewFeed(stringOpener(shortRecording), true)
	if err != nil {
		t.Fatal(err)
	}

	got := feed.Due(context.Background(), 200*time.Millisecond)
	var ats []time.Duration
	for _, f := range got {
		ats = append(ats, f.At)
	}

	want := []time.Duration{0, 33, 66, 99, 132, 165, 198}
	if len(ats) != len(want) {
		t.Fatalf("frames at %v, want %d frames", ats, len(want))
	}
	for i, w := range want {
		if d := ats[i] - w*time.Millisecond; d < -time.Millisecond || d > time.Millisecond {
			t.Errorf("frame %d at %v, want ≈%vms", i, ats[i], w)
		}
	}
	if feed.Done() {
		t.Error("looping feed reported done")
	}
}

func TestFeed_EmptyLoopStops(t *testing.T) {
	feed, err := NewFeed(stringOpener("garbage\n"), true)
	if err != nil {
		t.Fatal(err)
	}
	if got := feed.Due(context.Background(), time.Minute); len(got) != 0 {
		t.Errorf("got %d frames from an empty recording", len(got))
	}
	if !feed.Done() {
		t.Error("empty looping feed should stop")
	}
}
