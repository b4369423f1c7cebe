// render.go formats site summaries as tables, YAML or JSON.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	warnRate = 0.5
	goodRate = 0.75

	maxSiteWidth = 24
)

var numbers = message.NewPrinter(language.English)

// PrintTable writes a human friendly table of rows followed by the total.
// colorize highlights success rates regardless of terminal detection.
func PrintTable(w io.Writer, rows []SiteSummary, colorize bool) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No launch records loaded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SITE\tLAUNCHES\tSUCCESS\tFAILURE\tRATE\tPAYLOAD (kg)")
	for _, row := range append(append([]SiteSummary(nil), rows...), Total(rows)) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n",
			runewidth.Truncate(row.Site, maxSiteWidth, "..."),
			row.Launches,
			row.Successes,
			row.Failures,
			formatRate(row.SuccessRate, colorize),
			formatPayload(row),
		)
	}
	return tw.Flush()
}

func formatRate(r float64, colorize bool) string {
	text := fmt.Sprintf("%.0f%%", math.Round(r*100))
	if !colorize {
		return text
	}
	var c *color.Color
	switch {
	case r >= goodRate:
		c = color.New(color.FgGreen)
	case r >= warnRate:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgHiRed, color.Bold)
	}
	c.EnableColor()
	return c.Sprint(text)
}

func formatPayload(row SiteSummary) string {
	if row.Launches == 0 {
		return "-"
	}
	return numbers.Sprintf("%.0f-%.0f", row.MinPayloadKg, row.MaxPayloadKg)
}

// WriteYAML encodes the report for rows.
func WriteYAML(w io.Writer, rows []SiteSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(rows)); err != nil {
		return fmt.Errorf("encode summary yaml: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes the report for rows.
func WriteJSON(w io.Writer, rows []SiteSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(rows)); err != nil {
		return fmt.Errorf("encode summary json: %w", err)
	}
	return nil
}
