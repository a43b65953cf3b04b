package audio

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

func TestPad(t *testing.T) {
	tables := []struct {
		size, pad int64
	}{
		{0, 0}, {1, 3}, {2, 2}, {3, 1}, {4, 0}, {5, 3}, {16383, 1}, {16384, 0},
	}
	for _, table := range tables {
		assert.Equal(t, table.pad, Pad(table.size), "size %d", table.size)
		assert.Zero(t, (table.size+Pad(table.size))%4)
	}
}

func TestLocate(t *testing.T) {
	p, err := Locate("/opt/ffmpeg/bin/ffmpeg")
	require.NoError(t, err)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", p)

	t.Setenv("PATH", t.TempDir())
	_, err = Locate("")
	assert.Equal(t, ErrTranscoderNotFound, err)
}

// fakeTranscoder writes a shell script that behaves like ffmpeg by writing
// content to its last argument.
func fakeTranscoder(t *testing.T, content string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\nfor last; do :; done\nprintf '" + content + "' > \"$last\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestTranscode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.ogg")
	require.NoError(t, os.WriteFile(src, []byte("OggS"), 0o644))

	cfg := Config{
		Source:  src,
		Output:  filepath.Join(dir, "song.pcm"),
		FFmpeg:  fakeTranscoder(t, "abcde"),
		Preview: filepath.Join(dir, "song.wav"),
	}
	require.NoError(t, Transcode(cfg, discard))

	b, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 'c', 'd', 'e', 0, 0, 0}, b)

	w, err := os.ReadFile(cfg.Preview)
	require.NoError(t, err)
	require.Greater(t, len(w), 44)
	assert.Equal(t, "RIFF", string(w[:4]))
	assert.Equal(t, "WAVE", string(w[8:12]))
}

func TestTranscodeAligned(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.ogg")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	cfg := Config{Source: src, Output: filepath.Join(dir, "song.pcm"), FFmpeg: fakeTranscoder(t, "abcdefgh")}
	require.NoError(t, Transcode(cfg, discard))

	b, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdefgh"), b)
}

func TestTranscodeFailureLeavesNoOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "song.ogg")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	failing := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	cfg := Config{Source: src, Output: filepath.Join(dir, "song.pcm"), FFmpeg: failing}
	assert.Error(t, Transcode(cfg, discard))

	_, err := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestTranscodeMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Source: filepath.Join(dir, "missing.ogg"), Output: filepath.Join(dir, "out.pcm"), FFmpeg: "ffmpeg"}
	err := Transcode(cfg, discard)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestTranscodeMissingTranscoder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.ogg")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	t.Setenv("PATH", t.TempDir())
	err := Transcode(Config{Source: src, Output: filepath.Join(dir, "out.pcm")}, discard)
	assert.Equal(t, ErrTranscoderNotFound, err)
}

func TestResolveCue(t *testing.T) {
	dir := t.TempDir()

	audio := filepath.Join(dir, "album.cue")
	require.NoError(t, os.WriteFile(audio, []byte("FILE \"track01.wav\" WAVE\n  TRACK 01 AUDIO\n    INDEX 01 00:00:00\n"), 0o644))
	src, err := resolve(audio)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "track01.wav"), src)

	data := filepath.Join(dir, "game.cue")
	require.NoError(t, os.WriteFile(data, []byte("FILE \"game.bin\" BINARY\n  TRACK 01 MODE1/2352\n    INDEX 01 00:00:00\n"), 0o644))
	_, err = resolve(data)
	assert.Equal(t, ErrNoAudioTrack, err)

	src, err = resolve(filepath.Join(dir, "song.ogg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "song.ogg"), src)
}

func TestPCMStreamer(t *testing.T) {
	s := &pcmStreamer{pcm: []byte{0x00, 0x40, 0x80, 0xff}}
	samples := make([][2]float64, 3)

	n, ok := s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, [2]float64{0, 0}, samples[0])
	assert.Equal(t, [2]float64{0.5, 0.5}, samples[1])
	assert.Equal(t, [2]float64{-1, -1}, samples[2])

	n, ok = s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, -1.0/128, samples[0][0])

	n, ok = s.Stream(samples)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.NoError(t, s.Err())
}
