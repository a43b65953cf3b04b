/*
Package audio converts music into the raw PCM stream played back by the
hardware's direct sound channel.

Conversion is delegated to ffmpeg, which resamples the source to signed 8-bit
mono at a fixed rate. The result is padded with zero bytes to a multiple of
four so the firmware can stream it with 32-bit DMA transfers.
*/
package audio

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/citygame/gbaasset/output"
	"github.com/gopxl/beep/v2"
	"github.com/pkg/errors"
	"github.com/vchimishuk/chub/cue"
)

// DefaultSampleRate is the playback rate of the sound mixer.
const DefaultSampleRate = 16384

const alignment = 4

var (
	ErrTranscoderNotFound = errors.New("audio: ffmpeg not found (set FFMPEG to its path)")
	ErrNoAudioTrack       = errors.New("audio: cue sheet has no audio track")
)

type Config struct {
	// Source is an audio file or a cue sheet referencing one.
	Source string
	// Output receives the padded PCM stream.
	Output string
	// SampleRate defaults to DefaultSampleRate.
	SampleRate int
	// FFmpeg overrides the search for the transcoder.
	FFmpeg string
	// Preview optionally receives a WAV rendition of Output.
	Preview string
}

// Locate finds the transcoder: override if set, otherwise ffmpeg on the
// search path.
func Locate(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	for _, name := range []string{"ffmpeg", "ffmpeg.exe"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrTranscoderNotFound
}

// Pad returns the number of zero bytes needed to align size.
func Pad(size int64) int64 {
	return (alignment - size%alignment) % alignment
}

// resolve returns the audio file to transcode. Cue sheets resolve to the
// file holding their first audio track.
func resolve(source string) (string, error) {
	if !strings.EqualFold(filepath.Ext(source), ".cue") {
		return source, nil
	}

	sheet, err := cue.ParseFile(source)
	if err != nil {
		return "", errors.Wrap(err, "audio: parse cue sheet")
	}
	for _, file := range sheet.Files {
		for _, track := range file.Tracks {
			if track.DataType == cue.DataTypeAudio {
				return filepath.Join(filepath.Dir(source), file.Name), nil
			}
		}
	}
	return "", ErrNoAudioTrack
}

// Transcode converts cfg.Source into cfg.Output. Output is only replaced if
// every step succeeds.
func Transcode(cfg Config, logger *log.Logger) error {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	src, err := resolve(cfg.Source)
	if err != nil {
		return err
	}
	if _, err := os.Stat(src); err != nil {
		return errors.Wrap(err, "audio: source")
	}

	ffmpeg, err := Locate(cfg.FFmpeg)
	if err != nil {
		return err
	}

	var pcm []byte
	if err := output.Path(cfg.Output, func(tmp string) error {
		cmd := exec.Command(ffmpeg, "-y", "-i", src, "-vn", "-ac", "1", "-ar", strconv.Itoa(rate), "-f", "s8", tmp)
		logger.Printf("Running %s\n", strings.Join(cmd.Args, " "))
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Printf("%s", out)
			return errors.Wrap(err, "audio: ffmpeg")
		}

		b, err := os.ReadFile(tmp)
		if err != nil {
			return err
		}
		pcm = append(b, make([]byte, Pad(int64(len(b))))...)
		return os.WriteFile(tmp, pcm, 0o644)
	}); err != nil {
		return err
	}

	sr := beep.SampleRate(rate)
	logger.Printf("Wrote %d bytes (%v) to \"%s\"\n", len(pcm), sr.D(len(pcm)), cfg.Output)

	if cfg.Preview != "" {
		if err := writePreview(cfg.Preview, pcm, sr); err != nil {
			return err
		}
		logger.Printf("Wrote preview to \"%s\"\n", cfg.Preview)
	}

	return nil
}
