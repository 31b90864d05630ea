package ffmpeg

import (
	"path/filepath"
	"strings"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// outputSuffix is appended to the input's base name to form the output name
const outputSuffix = "_output"

// Format is a lowercase container token, also used as the output extension
type Format string

// Known output containers, in the order they are offered to the user
const (
	MP4  Format = "mp4"
	MOV  Format = "mov"
	OGV  Format = "ogv"
	FLV  Format = "flv"
	AVI  Format = "avi"
	WMV  Format = "wmv"
	MKV  Format = "mkv"
	WEBM Format = "webm"
	MPG  Format = "mpg"
	MPEG Format = "mpeg"
	M4V  Format = "m4v"
)

var formats = []Format{MP4, MOV, OGV, FLV, AVI, WMV, MKV, WEBM, MPG, MPEG, M4V}

// Formats returns the supported output formats
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat resolves a user-supplied token ("MP4", "mkv", ...) to a Format.
// The second return is false for empty or unknown tokens.
func ParseFormat(s string) (Format, bool) {
	token := Format(strings.ToLower(strings.TrimSpace(s)))
	if token == "" {
		return "", false
	}
	for _, f := range formats {
		if f == token {
			return f, true
		}
	}
	return "", false
}

// Extension returns the format as a file extension, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Label returns the uppercase name shown in format pickers
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// Request describes a single conversion. It is a value type; the output path
// is always derived from InputPath and Format, never stored.
type Request struct {
	ToolPath  string
	InputPath string
	Format    string
}

// NewRequest creates a conversion request
func NewRequest(toolPath, inputPath, format string) Request {
	return Request{
		ToolPath:  toolPath,
		InputPath: inputPath,
		Format:    format,
	}
}

// OutputPath returns the path the conversion writes to
func (r Request) OutputPath() string {
	return DeriveOutputPath(r.InputPath, r.Format)
}

// DeriveOutputPath places "<name>_output.<format>" next to the input file.
// It does not touch the file system.
func DeriveOutputPath(inputPath, format string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + outputSuffix + "." + strings.ToLower(strings.TrimSpace(format))
	return filepath.Join(filepath.Dir(inputPath), name)
}

// BuildArgs returns the tool arguments for converting inputPath to outputPath.
// Each path is a separate argument, so embedded spaces need no quoting.
func BuildArgs(inputPath, outputPath string) []string {
	return ffmpeggo.Input(inputPath).Output(outputPath).GetArgs()
}
