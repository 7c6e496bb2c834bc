// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/wav"
	"github.com/ik5/pcmplay/utils"
)

type toneOptions struct {
	freq      float64
	seconds   float64
	rate      int
	channels  int
	amplitude float64
}

func newToneCmd(opts *options) *cobra.Command {
	to := &toneOptions{}

	cmd := &cobra.Command{
		Use:           "tone [flags] <out.wav>",
		Short:         "Write a 16-bit sine tone WAV file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTone(cmd, to, opts.verbose, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&to.freq, "freq", 440, "tone frequency in Hz")
	f.Float64Var(&to.seconds, "seconds", 2, "tone length")
	f.IntVar(&to.rate, "rate", 44100, "sample rate in Hz")
	f.IntVar(&to.channels, "channels", 2, "channel count")
	f.Float64Var(&to.amplitude, "amplitude", 0.5, "peak level, 0 to 1")

	return cmd
}

func writeTone(cmd *cobra.Command, to *toneOptions, verbose bool, path string) (err error) {
	if to.rate <= 0 || to.channels <= 0 || to.seconds < 0 || to.freq <= 0 {
		return fmt.Errorf("tone: rate %d, channels %d, seconds %g and freq %g must be positive",
			to.rate, to.channels, to.seconds, to.freq)
	}

	logger := newLogger(cmd, verbose)

	format := audio.Format{Channels: to.channels, SampleRate: to.rate, BitsPerSample: 16}
	frames := int(to.seconds * float64(to.rate))
	buf := utils.Sine(format, to.freq, frames, to.amplitude)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := wav.Encode(f, buf); err != nil {
		return fmt.Errorf("tone: %w", err)
	}

	logger.Info("wrote tone",
		"file", path,
		"freq", to.freq,
		"frames", buf.TotalFrames(),
		"duration", buf.Duration().Round(time.Millisecond),
	)

	return nil
}
