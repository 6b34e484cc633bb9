// Package timecode converts colon-separated timecodes to absolute frame counts.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cutxml/cuterr"
)

// DefaultRate is the timeline frame rate in frames per second.
const DefaultRate = 30

// MaxFrames bounds every frame count; larger timecodes are rejected.
const MaxFrames = math.MaxInt32

// ToFrames converts HH:MM:SS or HH:MM:SS:FF to a frame count at rate.
func ToFrames(tc string, rate int) (int, error) {
	parts := strings.Split(strings.TrimSpace(tc), ":")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, cuterr.Formatf("invalid timecode format: %q", tc)
	}

	fields := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, cuterr.Formatf("invalid timecode field %q in %q", p, tc)
		}
		if n > MaxFrames {
			return 0, cuterr.Formatf("timecode %q out of range", tc)
		}
		fields[i] = n
	}

	// Fields are at most MaxFrames, so the sum cannot overflow int64.
	hours, minutes, seconds, frames := int64(fields[0]), int64(fields[1]), int64(fields[2]), int64(fields[3])
	total := (hours*3600+minutes*60+seconds)*int64(rate) + frames
	if total > MaxFrames {
		return 0, cuterr.Formatf("timecode %q out of range", tc)
	}
	return int(total), nil
}

// FromFrames renders a frame count as HH:MM:SS:FF at rate.
func FromFrames(frames, rate int) string {
	if frames < 0 {
		frames = 0
	}
	ff := frames % rate
	total := frames / rate
	return fmt.Sprintf("%02d:%02d:%02d:%02d", total/3600, (total/60)%60, total%60, ff)
}
