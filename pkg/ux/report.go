// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// ValidateReportFormat checks a --report-format value.
func ValidateReportFormat(format string) error {
	switch format {
	case constants.ReportFormatJSON, constants.ReportFormatYAML:
		return nil
	}
	return fmt.Errorf("%w: unsupported report format %q (use %s or %s)", constants.ErrConfiguration, format, constants.ReportFormatJSON, constants.ReportFormatYAML)
}

// PrintReport writes the machine-readable contract name -> address report.
func PrintReport(w io.Writer, format string, report map[string]string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case constants.ReportFormatYAML:
		out, err = yaml.Marshal(report)
	default:
		out, err = json.MarshalIndent(report, "", "    ")
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// PrintTable renders rows under header.
func PrintTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	anyHeader := make([]any, len(header))
	for i, h := range header {
		anyHeader[i] = h
	}
	table.Header(anyHeader...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
