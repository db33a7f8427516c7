// Package decode implements colortrack.Decoder on top of the ffmpeg binary.
//
// Each Decoder owns one ffmpeg process that emits packed rgb24 frames on
// stdout. Seeking restarts the process with an input-side seek, so ffmpeg
// decodes from the nearest keyframe before the target instead of from the
// start of the file.
package decode

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"videocolors/internal/colortrack"
)

var (
	// ErrNoVideoStream is returned when the input has no video stream.
	ErrNoVideoStream = errors.New("decode: no video stream")

	// ErrEndOfStream is returned when ffmpeg stops producing frames before
	// the requested one.
	ErrEndOfStream = errors.New("decode: unexpected end of stream")

	// ErrClosed is returned by operations on a closed decoder.
	ErrClosed = errors.New("decode: decoder is closed")
)

// Opener probes and opens videos with ffmpeg.
type Opener struct {
	logger *zap.Logger
	probe  func(path string) (string, error)
}

// OpenerOption configures an Opener.
type OpenerOption func(*Opener)

// WithLogger sets the logger used for process lifecycle messages.
func WithLogger(l *zap.Logger) OpenerOption {
	return func(o *Opener) {
		o.logger = l
	}
}

// NewOpener returns an Opener backed by ffprobe and ffmpeg.
func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{
		logger: zap.NewNop(),
		probe: func(path string) (string, error) {
			return ffmpeg.Probe(path)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open probes path. No ffmpeg process is started until the first Seek, Skip
// or Read.
func (o *Opener) Open(ctx context.Context, path string) (colortrack.Decoder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := o.probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	info, err := parseProbe(out)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("probe %s: invalid frame size %dx%d", path, info.Width, info.Height)
	}
	return &Decoder{
		path:   path,
		info:   info,
		buf:    make([]byte, info.Width*info.Height*3),
		logger: o.logger.With(zap.String("input", path)),
	}, nil
}

// Decoder reads frames sequentially from one ffmpeg process.
//
// Skipping is not cheaper than reading at the decode level: every frame,
// skipped or not, is decoded by ffmpeg and copied through the rgb24 pipe.
type Decoder struct {
	path   string
	info   colortrack.StreamInfo
	buf    []byte
	logger *zap.Logger

	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer
	pos    int
	err    error
	closed bool
}

func (d *Decoder) Info() colortrack.StreamInfo { return d.info }

// Seek restarts ffmpeg so the next frame produced is index.
func (d *Decoder) Seek(index int) error {
	if d.closed {
		return ErrClosed
	}
	if index < 0 || index > d.info.FrameCount {
		return fmt.Errorf("seek %d: outside [0,%d]", index, d.info.FrameCount)
	}
	d.stop()
	d.err = nil

	cmd := d.seekCommand(index)
	d.stderr.Reset()
	cmd.Stderr = &d.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("seek %d: %w", index, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("seek %d: start ffmpeg: %w", index, err)
	}
	d.logger.Debug("ffmpeg started", zap.Int("start_frame", index), zap.String("args", strings.Join(cmd.Args, " ")))

	d.cmd = cmd
	d.stdout = stdout
	d.reader = bufio.NewReaderSize(stdout, len(d.buf))
	d.pos = index
	return nil
}

// seekCommand builds the ffmpeg command whose first output frame is index.
// The seek point sits half a frame before the target so accurate seeking
// keeps the target and drops its predecessor. Without a known frame rate it
// falls back to trimming, which decodes from the start.
func (d *Decoder) seekCommand(index int) *exec.Cmd {
	out := ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgb24",
		"vsync":   "passthrough",
	}
	if index == 0 {
		return ffmpeg.Input(d.path).Output("pipe:", out).Compile()
	}
	if d.info.FrameRate <= 0 {
		return ffmpeg.Input(d.path).
			Filter("trim", ffmpeg.Args{}, ffmpeg.KwArgs{"start_frame": index}).
			Filter("setpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Output("pipe:", out).
			Compile()
	}
	start := (float64(index) - 0.5) / d.info.FrameRate
	return ffmpeg.Input(d.path, ffmpeg.KwArgs{"ss": strconv.FormatFloat(start, 'f', 6, 64)}).
		Output("pipe:", out).
		Compile()
}

func (d *Decoder) next() error {
	if d.closed {
		return ErrClosed
	}
	if d.err != nil {
		return d.err
	}
	if d.cmd == nil {
		if err := d.Seek(0); err != nil {
			return err
		}
	}
	if _, err := io.ReadFull(d.reader, d.buf); err != nil {
		// Wait for ffmpeg before touching its stderr buffer.
		d.stop()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrEndOfStream
		}
		d.err = fmt.Errorf("frame %d: %w%s", d.pos, err, d.stderrTail())
		return d.err
	}
	d.pos++
	return nil
}

// Skip consumes one frame. ffmpeg still decodes it and writes it to the pipe,
// so the saving over Read is the color extraction the caller does not perform.
func (d *Decoder) Skip() error {
	return d.next()
}

// Read returns the next frame. The pixel buffer is reused by the next call.
func (d *Decoder) Read() (colortrack.Frame, error) {
	if err := d.next(); err != nil {
		return colortrack.Frame{}, err
	}
	return colortrack.Frame{Width: d.info.Width, Height: d.info.Height, Pix: d.buf}, nil
}

// Close stops the ffmpeg process.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.stop()
	return nil
}

func (d *Decoder) stop() {
	if d.cmd == nil {
		return
	}
	_ = d.stdout.Close()
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.cmd.Wait()
	d.cmd, d.stdout, d.reader = nil, nil, nil
}

func (d *Decoder) stderrTail() string {
	msg := strings.TrimSpace(d.stderr.String())
	if msg == "" {
		return ""
	}
	if len(msg) > 512 {
		msg = msg[len(msg)-512:]
	}
	return ", ffmpeg: " + msg
}
