// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// WaitSpinner animates while blocking on the ledger. It stays silent unless
// stderr is a terminal.
type WaitSpinner struct {
	bar *progressbar.ProgressBar
}

func NewWaitSpinner(description string) *WaitSpinner {
	visible := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionClearOnFinish(),
	)
	return &WaitSpinner{bar: bar}
}

func (s *WaitSpinner) Tick() {
	_ = s.bar.Add(1)
}

func (s *WaitSpinner) Finish() {
	_ = s.bar.Finish()
}
