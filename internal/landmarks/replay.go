package landmarks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

const maxLineSize = 1 << 20

// frameLine is the on-disk form of a Frame: one JSON object per line,
//
//	{"t_ms": 33, "hands": [[[x, y, z], ...], ...]}
type frameLine struct {
	TimeMS float64       `json:"t_ms"`
	Hands  [][][]float64 `json:"hands"`
}

// ReplaySource reads a JSON-lines landmark recording.
type ReplaySource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	closed  bool
}

// NewReplaySource reads frames from r. If r is an io.Closer it is closed by Close.
func NewReplaySource(r io.Reader) *ReplaySource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	s := &ReplaySource{scanner: sc}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenReplay opens a recording file.
func OpenReplay(path string) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	return NewReplaySource(f), nil
}

// ReplayOpener returns an Opener for path, for looping feeds.
func ReplayOpener(path string) Opener {
	return func() (Source, error) {
		return OpenReplay(path)
	}
}

// Next decodes the next non-blank line.
func (s *ReplaySource) Next(ctx context.Context) (Frame, error) {
	if s.closed {
		return Frame{}, ErrClosed
	}
	for {
		if err := ctx.Err(); err != nil {
			return Frame{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return Frame{}, fmt.Errorf("read recording: %w", err)
			}
			return Frame{}, io.EOF
		}
		s.line++

		raw := s.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		return decodeLine(raw, s.line)
	}
}

// Close releases the underlying reader.
func (s *ReplaySource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func decodeLine(raw []byte, line int) (Frame, error) {
	var fl frameLine
	if err := json.Unmarshal(raw, &fl); err != nil {
		return Frame{}, fmt.Errorf("%w: line %d: %v", ErrMalformedFrame, line, err)
	}
	if fl.TimeMS < 0 {
		return Frame{}, fmt.Errorf("%w: line %d: negative timestamp", ErrMalformedFrame, line)
	}

	f := Frame{
		At:    time.Duration(fl.TimeMS * float64(time.Millisecond)),
		Hands: make([][]geom.Point3D, len(fl.Hands)),
	}
	for h, hand := range fl.Hands {
		pts := make([]geom.Point3D, len(hand))
		for i, p := range hand {
			switch len(p) {
			case 2:
				pts[i] = geom.Point3D{X: p[0], Y: p[1]}
			case 3:
				pts[i] = geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
			default:
				return Frame{}, fmt.Errorf("%w: line %d: hand %d point %d has %d coordinates", ErrMalformedFrame, line, h, i, len(p))
			}
		}
		f.Hands[h] = pts
	}
	return f, nil
}

// Encode writes f as one recording line.
func Encode(w io.Writer, f Frame) error {
	fl := frameLine{
		TimeMS: float64(f.At) / float64(time.Millisecond),
		Hands:  make([][][]float64, len(f.Hands)),
	}
	for h, hand := range f.Hands {
		fl.Hands[h] = make([][]float64, len(hand))
		for i, p := range hand {
			fl.Hands[h][i] = []float64{p.X, p.Y, p.Z}
		}
	}
	return json.NewEncoder(w).Encode(fl)
}
