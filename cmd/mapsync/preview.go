package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/mapsync"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	content, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	html := string(content)

	report := deps.Pipeline.Run(html, c.options())
	if report.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mapsync.ErrorMessage(report.Err))
		return report.Err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Prospects)
	}

	if deps.Detector != nil {
		if !deps.Detector.LooksLikeMaps(html) {
			fmt.Fprintln(deps.Stderr, "warning: page does not look like a saved Google Maps page")
		}
		var parts []string
		for _, d := range deps.Detector.Detect(html) {
			parts = append(parts, fmt.Sprintf("%s=%d", d.Matcher, d.Containers))
		}
		fmt.Fprintf(deps.Stdout, "Markup: %s\n", strings.Join(parts, " "))
	}

	fmt.Fprintf(deps.Stdout, "Found %d listings (%d skipped, %d duplicates)\n",
		len(report.Prospects), report.Skipped, report.Duplicates)
	for _, p := range report.Prospects {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s  %s\n",
			p.Name, dash(p.Address), dash(p.Phone), dash(p.Website), dash(p.Category), dash(p.City))
	}

	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
