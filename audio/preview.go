package audio

import (
	"os"

	"github.com/citygame/gbaasset/output"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/pkg/errors"
)

// pcmStreamer plays back signed 8-bit mono samples.
type pcmStreamer struct {
	pcm []byte
	pos int
}

func (s *pcmStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.pcm) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.pcm) {
		val := float64(int8(s.pcm[s.pos])) / (1 << 7)
		samples[n][0] = val
		samples[n][1] = val
		n++
		s.pos++
	}
	return n, true
}

func (s *pcmStreamer) Err() error {
	return nil
}

func writePreview(path string, pcm []byte, sr beep.SampleRate) error {
	format := beep.Format{
		SampleRate:  sr,
		NumChannels: 1,
		Precision:   1,
	}
	return output.Path(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_RDWR|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := wav.Encode(f, &pcmStreamer{pcm: pcm}, format); err != nil {
			return errors.Wrap(err, "audio: preview")
		}
		return f.Sync()
	})
}
