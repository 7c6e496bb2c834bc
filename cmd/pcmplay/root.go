// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/ctrlc"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ik5/pcmplay"
	"github.com/ik5/pcmplay/audio"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

type options struct {
	cfg     pcmplay.Config
	verbose bool
}

func newRootCmd(registry *audio.Registry) *cobra.Command {
	opts := &options{cfg: pcmplay.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "pcmplay [flags] <file.wav>",
		Short: "Play a 16-bit PCM WAV file",
		Long: `pcmplay decodes a canonical 16-bit PCM WAV file into memory and plays it
on the default output device, one block at a time.

Press Ctrl+C to stop playback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, registry, opts, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.cfg.Backend, "backend", "b", opts.cfg.Backend,
		fmt.Sprintf("output backend (%s)", strings.Join(registry.Names(), ", ")))
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log stream lifecycle")

	f := cmd.Flags()
	f.IntVar(&opts.cfg.BlockSize, "block-size", opts.cfg.BlockSize, "frames per device callback")
	f.DurationVar(&opts.cfg.Latency, "latency", opts.cfg.Latency, "device buffer length hint")
	f.BoolVar(&opts.cfg.Lenient, "lenient", false, "walk WAV chunks instead of requiring the 44-byte layout")

	cmd.AddCommand(newDevicesCmd(registry, opts), newToneCmd(opts))

	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "pcmplay",
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func lookupBackend(registry *audio.Registry, name string) (audio.Backend, error) {
	backend, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)",
			audio.ErrUnknownBackend, name, strings.Join(registry.Names(), ", "))
	}
	return backend, nil
}

func runPlay(cmd *cobra.Command, registry *audio.Registry, opts *options, path string) error {
	backend, err := lookupBackend(registry, opts.cfg.Backend)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, opts.verbose)

	player, err := pcmplay.New(backend, opts.cfg, pcmplay.WithLogger(logger))
	if err != nil {
		return err
	}

	devices, err := player.Devices()
	if err != nil {
		return err
	}
	printDevices(cmd, opts.cfg.Backend, devices)

	return runInterruptible(cmd.Context(), func(ctx context.Context) error {
		return player.PlayFile(ctx, path)
	})
}

// runInterruptible runs task until it returns or Ctrl+C is pressed. On
// Ctrl+C the task's context is cancelled and its return is awaited, so the
// device is released before the process exits.
func runInterruptible(ctx context.Context, task func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	err := ctrlc.Default.Run(ctx, func() error {
		err := task(ctx)
		errc <- err
		return err
	})

	select {
	case <-errc:
		return err
	default:
	}

	cancel()
	<-errc

	return err
}

func printDevices(cmd *cobra.Command, backend string, devices []audio.DeviceInfo) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headingStyle.Render("Devices")+" "+faintStyle.Render("("+backend+")"))
	for i, d := range devices {
		line := fmt.Sprintf("  %d: %s, max %d output channels", i, labelStyle.Render(d.Name), d.MaxOutputChannels)
		if d.Default {
			line += faintStyle.Render(" [default]")
		}
		fmt.Fprintln(out, line)
	}
}
