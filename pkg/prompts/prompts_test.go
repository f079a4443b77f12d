// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func withTTY(t *testing.T, tty bool) {
	orig := stdinIsTTY
	stdinIsTTY = func() bool { return tty }
	t.Cleanup(func() { stdinIsTTY = orig })
}

func TestIsInteractiveEnv(t *testing.T) {
	tests := []struct {
		envValue string
		expected bool
	}{
		{"1", false},
		{"true", false},
		{"yes", false},
		{"0", true},
		{"false", true},
		{"no", true},
		{"", true},
	}
	for _, tc := range tests {
		t.Run(EnvNonInteractive+"="+tc.envValue, func(t *testing.T) {
			withTTY(t, true)
			t.Setenv(EnvCI, "")
			t.Setenv(EnvNonInteractive, tc.envValue)
			require.Equal(t, tc.expected, IsInteractive())
		})
	}
}

func TestIsInteractiveCI(t *testing.T) {
	withTTY(t, true)
	t.Setenv(EnvNonInteractive, "")
	t.Setenv(EnvCI, "true")
	require.False(t, IsInteractive())
	_, ok := NewPrompterForMode().(*NonInteractivePrompter)
	require.True(t, ok)
}

func TestIsInteractiveNoTTY(t *testing.T) {
	withTTY(t, false)
	t.Setenv(EnvNonInteractive, "")
	t.Setenv(EnvCI, "")
	require.False(t, IsInteractive())
}

func TestNonInteractivePassword(t *testing.T) {
	_, err := NewNonInteractivePrompter().CapturePassword("Password to unlock /key")
	require.ErrorIs(t, err, ErrNonInteractive)
	require.Contains(t, err.Error(), "--password-file")
}

func TestCapturePassword(t *testing.T) {
	require := require.New(t)
	orig := promptUIRunner
	t.Cleanup(func() { promptUIRunner = orig })

	var got promptui.Prompt
	promptUIRunner = func(p promptui.Prompt) (string, error) {
		got = p
		return "hunter2", nil
	}
	pw, err := NewPrompter().CapturePassword("Password")
	require.NoError(err)
	require.Equal("hunter2", pw)
	require.Equal('*', got.Mask)
	require.Error(got.Validate(""))
	require.NoError(got.Validate("x"))
}
