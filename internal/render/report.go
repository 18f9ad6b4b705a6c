package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/vukan322/ghrecap/internal/core"
	"github.com/vukan322/ghrecap/internal/personality"
	"github.com/vukan322/ghrecap/internal/recap"
)

//go:embed templates/report.tmpl
var reportTemplate string

var reportTmpl = template.Must(
	template.New("report").
		Funcs(template.FuncMap{
			"pct": func(f float64) string {
				return fmt.Sprintf("%.0f%%", f*100)
			},
			"delta": func(f float64) string {
				return fmt.Sprintf("%+.0f%%", f*100)
			},
		}).
		Parse(reportTemplate),
)

type reportViewModel struct {
	Title       string
	YearLabel   string
	Source      string
	Stats       core.YearStats
	Changes     *core.Changes
	Personality personality.Result
	Warnings    []string
}

// Report renders a recap response as a plain-text terminal report, including
// the matched archetype.
func Report(resp *recap.Response) ([]byte, error) {
	title := resp.Stats.DisplayName
	if title == "" {
		title = resp.Stats.Handle
	}

	yearLabel := "All time"
	if resp.Stats.Year != core.AllTimeYear {
		yearLabel = fmt.Sprintf("%d", resp.Stats.Year)
	}

	var changes *core.Changes
	if resp.Comparison != nil {
		changes = resp.Comparison.Changes
	}

	vm := reportViewModel{
		Title:       title,
		YearLabel:   yearLabel,
		Source:      resp.Meta.Source,
		Stats:       resp.Stats,
		Changes:     changes,
		Personality: personality.Match(resp.Stats),
		Warnings:    resp.Meta.Warnings,
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
