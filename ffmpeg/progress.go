package ffmpeg

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

const (
	progressMarker = "fps="
	// Only this many characters after the marker are read. Single-digit and
	// three-digit rates are therefore misread or skipped.
	fpsWidth = 2
	// A rate of referenceFPS or more is reported as 100%.
	referenceFPS = 60.0
)

// ParseProgress extracts a percentage from one line of tool output.
// It looks for "fps=", parses the two characters that follow as an integer
// and scales the result against 60 fps, clamped to [0,100]. The second return
// is false when the line carries no usable sample.
func ParseProgress(line string) (int, bool) {
	if strings.TrimSpace(line) == "" {
		return 0, false
	}
	idx := strings.Index(line, progressMarker)
	if idx == -1 {
		return 0, false
	}
	start := idx + len(progressMarker)
	if len(line)-start < fpsWidth {
		return 0, false
	}
	fps, err := strconv.Atoi(strings.TrimSpace(line[start : start+fpsWidth]))
	if err != nil {
		return 0, false
	}
	return percentForFPS(fps), true
}

func percentForFPS(fps int) int {
	percent := int(math.Round(100 * float64(fps) / referenceFPS))
	return max(0, min(100, percent))
}

// scanOutputLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a
// bare "\r". ffmpeg rewrites its statistics line using carriage returns.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// need one more byte to tell "\r" from "\r\n"
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
