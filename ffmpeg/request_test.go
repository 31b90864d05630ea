package ffmpeg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{"plain", filepath.Join("videos", "clip.mov"), "mp4", filepath.Join("videos", "clip_output.mp4")},
		{"uppercase format", filepath.Join("videos", "clip.mov"), "MKV", filepath.Join("videos", "clip_output.mkv")},
		{"dots in name", filepath.Join("videos", "a.b.c.avi"), "webm", filepath.Join("videos", "a.b.c_output.webm")},
		{"no extension", filepath.Join("videos", "clip"), "mp4", filepath.Join("videos", "clip_output.mp4")},
		{"spaces", filepath.Join("my videos", "holiday clip.mp4"), "mov", filepath.Join("my videos", "holiday clip_output.mov")},
		{"bare file name", "clip.mp4", "mp4", "clip_output.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveOutputPath(tt.input, tt.format)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DeriveOutputPath(tt.input, tt.format), "must be deterministic")
		})
	}
}

func TestRequestOutputPathMatchesDerive(t *testing.T) {
	req := NewRequest("/usr/bin/ffmpeg", filepath.Join("in", "movie.mkv"), "MP4")
	assert.Equal(t, DeriveOutputPath(req.InputPath, req.Format), req.OutputPath())
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, ok := ParseFormat(f.Label())
		require.True(t, ok, f)
		assert.Equal(t, f, got)
	}

	for _, bad := range []string{"", "   ", "gif", "mp3", ".mp4"} {
		_, ok := ParseFormat(bad)
		assert.False(t, ok, "%q should not parse", bad)
	}
}

func TestFormatsOrderAndCopy(t *testing.T) {
	got := Formats()
	require.Len(t, got, 11)
	assert.Equal(t, MP4, got[0])
	assert.Equal(t, M4V, got[len(got)-1])

	got[0] = "zzz"
	assert.Equal(t, MP4, Formats()[0], "callers must not be able to change the list")
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".webm", WEBM.Extension())
	assert.Equal(t, "WEBM", WEBM.Label())
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("/tmp/my videos/in put.mov", "/tmp/my videos/in put_output.mp4")
	assert.Equal(t, []string{"-i", "/tmp/my videos/in put.mov", "/tmp/my videos/in put_output.mp4"}, args)
}
