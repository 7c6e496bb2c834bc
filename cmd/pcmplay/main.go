// SPDX-License-Identifier: EPL-2.0

// Command pcmplay plays a 16-bit PCM WAV file on the default sound device.
//
// Usage:
//
//	pcmplay [flags] <file.wav>
//	pcmplay devices [--backend name]
//	pcmplay tone [--freq Hz --seconds n --rate Hz --channels n] <out.wav>
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/output"
)

func defaultRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("oto", output.NewOto())
	registry.Register("beep", output.NewBeep())
	return registry
}

func main() {
	if err := newRootCmd(defaultRegistry()).Execute(); err != nil {
		log.Error("pcmplay failed", "err", err)
		os.Exit(1)
	}
}
