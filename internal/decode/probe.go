package decode

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"videocolors/internal/colortrack"
)

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
	Tags         struct {
		Rotate string `json:"rotate"`
	} `json:"tags"`
	SideData []struct {
		Rotation float64 `json:"rotation"`
	} `json:"side_data_list"`
}

// parseProbe turns ffprobe JSON into stream info for the first video stream.
// The frame count comes from nb_frames when the container records it, and is
// estimated from duration otherwise.
func parseProbe(data string) (colortrack.StreamInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return colortrack.StreamInfo{}, fmt.Errorf("parse probe output: %w", err)
	}

	var vs *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			vs = &out.Streams[i]
			break
		}
	}
	if vs == nil {
		return colortrack.StreamInfo{}, ErrNoVideoStream
	}

	rate := parseRational(vs.AvgFrameRate)
	if rate <= 0 {
		rate = parseRational(vs.RFrameRate)
	}

	count, err := strconv.Atoi(vs.NbFrames)
	if err != nil || count <= 0 {
		duration := parseFloat(vs.Duration)
		if duration <= 0 {
			duration = parseFloat(out.Format.Duration)
		}
		count = int(math.Round(duration * rate))
	}

	width, height := vs.Width, vs.Height
	if rotated(vs) {
		width, height = height, width
	}

	return colortrack.StreamInfo{
		FrameRate:  rate,
		FrameCount: count,
		Width:      width,
		Height:     height,
	}, nil
}

// rotated reports a quarter turn, which ffmpeg applies when autorotating.
func rotated(vs *probeStream) bool {
	deg := parseFloat(vs.Tags.Rotate)
	for _, sd := range vs.SideData {
		if sd.Rotation != 0 {
			deg = sd.Rotation
		}
	}
	r := int(math.Abs(deg)) % 180
	return r == 90
}

func parseRational(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n, d := parseFloat(num), parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
