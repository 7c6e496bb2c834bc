// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmplay/audio"
)

func newDevicesCmd(registry *audio.Registry, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:           "devices",
		Short:         "List output devices",
		Long:          "List the output devices of every backend, or only of --backend when it is given.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := registry.Names()
			if cmd.Flags().Changed("backend") {
				names = []string{opts.cfg.Backend}
			}

			for _, name := range names {
				backend, err := lookupBackend(registry, name)
				if err != nil {
					return err
				}

				devices, err := backend.Devices()
				if err != nil {
					return fmt.Errorf("%s: %w: %w", name, audio.ErrDeviceUnavailable, err)
				}
				printDevices(cmd, name, devices)
			}

			return nil
		},
	}
}
