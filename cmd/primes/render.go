package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/helixml/primes/application/service"
	"github.com/helixml/primes/internal/config"
)

// renderReport writes report to w in the given format. Text output is the
// answer line alone.
func renderReport(w io.Writer, report service.Report, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		if _, err := fmt.Fprintln(w, report.Message); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
