package utils

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration 通过 ffprobe 读取媒体时长（秒）
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe media")
	}
	return ParseProbeDuration(out)
}

// ParseProbeDuration reads format.duration from ffprobe json output
func ParseProbeDuration(probeJSON string) (float64, error) {
	d := gjson.Get(probeJSON, "format.duration")
	if !d.Exists() {
		return 0, errors.New("probe output has no format.duration")
	}
	return d.Float(), nil
}
