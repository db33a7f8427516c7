package decode

import (
	"context"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"videocolors/internal/colortrack"
	"videocolors/internal/framecolor"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}
}

// writeTestVideo renders 3 seconds of the lavfi test pattern at 10fps. The
// pattern changes every frame, so misattributed frames are detectable.
func writeTestVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testsrc.mp4")
	err := ffmpeg.Input("testsrc=duration=3:size=32x24:rate=10", ffmpeg.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeg.KwArgs{"c:v": "mpeg4", "q:v": 2, "pix_fmt": "yuv420p"}).
		OverWriteOutput().
		Run()
	require.NoError(t, err)
	return path
}

func TestDecoderSeekMatchesSequentialRead(t *testing.T) {
	requireFFmpeg(t)
	path := writeTestVideo(t)
	ctx := context.Background()
	opener := NewOpener()

	seq, err := opener.Open(ctx, path)
	require.NoError(t, err)
	defer seq.Close()

	info := seq.Info()
	assert.Equal(t, 10.0, info.FrameRate)
	assert.Equal(t, 30, info.FrameCount)
	assert.Equal(t, 32, info.Width)
	assert.Equal(t, 24, info.Height)

	require.NoError(t, seq.Seek(0))
	frames := make([][]byte, 0, info.FrameCount)
	for i := 0; i < info.FrameCount; i++ {
		f, err := seq.Read()
		require.NoError(t, err)
		frames = append(frames, append([]byte(nil), f.Pix...))
	}

	for _, index := range []int{1, 11, 12, 17, 29} {
		jump, err := opener.Open(ctx, path)
		require.NoError(t, err)
		require.NoError(t, jump.Seek(index))
		got, err := jump.Read()
		require.NoError(t, err)
		assert.Equal(t, frames[index], got.Pix, "frame %d", index)
		require.NoError(t, jump.Close())
	}
}

func TestSeekCommandSeeksInput(t *testing.T) {
	d := &Decoder{path: "in.mp4", info: colortrack.StreamInfo{FrameRate: 10, FrameCount: 30}}

	args := d.seekCommand(17).Args
	ss := slices.Index(args, "-ss")
	in := slices.Index(args, "-i")
	require.NotEqual(t, -1, ss)
	require.Less(t, ss, in)
	assert.Equal(t, "1.650000", args[ss+1])
	assert.NotContains(t, strings.Join(args, " "), "trim")

	assert.NotContains(t, d.seekCommand(0).Args, "-ss")

	d.info.FrameRate = 0
	args = d.seekCommand(17).Args
	assert.NotContains(t, args, "-ss")
	assert.Contains(t, strings.Join(args, " "), "trim=start_frame=17")
}

func TestDecoderEndOfStream(t *testing.T) {
	requireFFmpeg(t)
	path := writeTestVideo(t)

	dec, err := NewOpener().Open(context.Background(), path)
	require.NoError(t, err)
	defer dec.Close()

	require.NoError(t, dec.Seek(29))
	_, err = dec.Read()
	require.NoError(t, err)
	_, err = dec.Read()
	assert.ErrorIs(t, err, ErrEndOfStream)
	assert.ErrorIs(t, dec.Skip(), ErrEndOfStream)
}

func TestPipelineOverFFmpeg(t *testing.T) {
	requireFFmpeg(t)
	path := writeTestVideo(t)

	var tracks []colortrack.ColorTrack
	for _, workers := range []int{1, 3} {
		p := colortrack.New(NewOpener(), framecolor.Mean{},
			colortrack.WithWorkers(workers),
			colortrack.WithMinChunkSeconds(1),
		)
		track, err := p.Extract(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, track, 3)
		tracks = append(tracks, track)
	}
	assert.Equal(t, tracks[0], tracks[1])
}

func TestOpenMissingFile(t *testing.T) {
	requireFFmpeg(t)
	_, err := NewOpener().Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
