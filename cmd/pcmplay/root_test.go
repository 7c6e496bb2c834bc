// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmplay"
	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/wav"
	"github.com/ik5/pcmplay/internal/audiotest"
)

func mockRegistry(backend *audiotest.MockBackend) *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("mock", backend)
	registry.Register("other", &audiotest.MockBackend{
		DeviceList: []audio.DeviceInfo{{Name: "speakers", MaxOutputChannels: 8, Default: true}},
	})
	return registry
}

func execute(t *testing.T, registry *audio.Registry, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd(registry)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeRamp(t *testing.T, channels, frames int) (string, []int16) {
	t.Helper()

	samples := make([]int16, channels*frames)
	for i := range samples {
		samples[i] = int16(i%500 - 250)
	}

	path := filepath.Join(t.TempDir(), "ramp.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := audio.Format{Channels: channels, SampleRate: 8000, BitsPerSample: 16}
	require.NoError(t, wav.WriteWAV16(f, format, samples))

	return path, samples
}

func TestRootCmd_PlaysFile(t *testing.T) {
	t.Parallel()

	backend := &audiotest.MockBackend{}
	path, samples := writeRamp(t, 2, 1000)

	stdout, stderr, err := execute(t, mockRegistry(backend), "--backend", "mock", "--block-size", "100", path)
	require.NoError(t, err)

	streams := backend.Streams()
	require.Len(t, streams, 1)

	stream := streams[0]
	assert.True(t, stream.Closed())
	assert.Equal(t, 100, stream.Config().BlockSize)
	assert.Equal(t, samples, stream.Output()[:len(samples)])

	assert.Contains(t, stdout, "Devices")
	assert.Contains(t, stdout, "mock")
	assert.Contains(t, stderr, "frames=1000")
}

func TestRootCmd_Errors(t *testing.T) {
	t.Parallel()

	path, _ := writeRamp(t, 1, 10)

	notWAV := filepath.Join(t.TempDir(), "not.wav")
	require.NoError(t, os.WriteFile(notWAV, bytes.Repeat([]byte{0}, 64), 0o600))

	tests := []struct {
		name    string
		backend *audiotest.MockBackend
		args    []string
		want    error
	}{
		{
			name:    "unknown backend",
			backend: &audiotest.MockBackend{},
			args:    []string{"--backend", "alsa", path},
			want:    audio.ErrUnknownBackend,
		},
		{
			name:    "invalid block size",
			backend: &audiotest.MockBackend{},
			args:    []string{"--backend", "mock", "--block-size", "0", path},
			want:    pcmplay.ErrInvalidConfig,
		},
		{
			name:    "not a WAV file",
			backend: &audiotest.MockBackend{},
			args:    []string{"--backend", "mock", notWAV},
			want:    wav.ErrInvalidContainer,
		},
		{
			name:    "missing file",
			backend: &audiotest.MockBackend{},
			args:    []string{"--backend", "mock", filepath.Join(t.TempDir(), "nope.wav")},
			want:    wav.ErrIO,
		},
		{
			name:    "device cannot open",
			backend: &audiotest.MockBackend{FailOpen: audio.ErrDeviceUnavailable},
			args:    []string{"--backend", "mock", path},
			want:    audio.ErrDeviceUnavailable,
		},
		{
			name:    "device will not start",
			backend: &audiotest.MockBackend{FailStart: errors.New("busy")},
			args:    []string{"--backend", "mock", path},
			want:    audio.ErrStreamStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, mockRegistry(tt.backend), tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRootCmd_RequiresOneFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, mockRegistry(&audiotest.MockBackend{}), "--backend", "mock")
	assert.Error(t, err)

	_, _, err = execute(t, mockRegistry(&audiotest.MockBackend{}), "--backend", "mock", "a.wav", "b.wav")
	assert.Error(t, err)
}

func TestDevicesCmd(t *testing.T) {
	t.Parallel()

	registry := mockRegistry(&audiotest.MockBackend{})

	stdout, _, err := execute(t, registry, "devices")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(mock)")
	assert.Contains(t, stdout, "(other)")
	assert.Contains(t, stdout, "speakers")
	assert.Contains(t, stdout, "max 8 output channels")

	stdout, _, err = execute(t, registry, "devices", "--backend", "other")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "(mock)")
	assert.Contains(t, stdout, "speakers")

	_, _, err = execute(t, registry, "devices", "--backend", "alsa")
	assert.ErrorIs(t, err, audio.ErrUnknownBackend)
}

func TestToneCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")

	_, stderr, err := execute(t, mockRegistry(&audiotest.MockBackend{}),
		"tone", "--freq", "1000", "--seconds", "0.5", "--rate", "8000", "--channels", "1", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote tone")

	buf, err := wav.Decoder{Lenient: true}.DecodeFile(path)
	require.NoError(t, err)

	assert.Equal(t, audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16}, buf.Format)
	assert.Equal(t, 4000, buf.TotalFrames())
	assert.Equal(t, 500*time.Millisecond, buf.Duration())
}

func TestToneCmd_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")

	_, _, err := execute(t, mockRegistry(&audiotest.MockBackend{}), "tone", "--rate", "0", path)
	assert.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "no file is written for bad arguments")
}

func TestRunInterruptible_ReturnsTaskError(t *testing.T) {
	t.Parallel()

	want := errors.New("boom")
	err := runInterruptible(context.Background(), func(context.Context) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
