// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"

	"github.com/manifoldco/promptui"
)

var errEmptyPassword = errors.New("password cannot be empty")

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// Prompter asks the operator for values that were not given as flags.
type Prompter interface {
	CapturePassword(promptStr string) (string, error)
}

type realPrompter struct{}

// NewPrompter returns a Prompter that reads from the terminal.
func NewPrompter() Prompter {
	return &realPrompter{}
}

func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validatePassword,
	}
	return promptUIRunner(prompt)
}

func validatePassword(input string) error {
	if input == "" {
		return errEmptyPassword
	}
	return nil
}
