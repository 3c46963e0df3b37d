// Package report renders plain-text habitability analysis reports.
package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"transitlab/internal/domain/habitability"
)

const rule = "======================================================================"

// Input carries everything a report needs.
type Input struct {
	Station     string
	GeneratedAt time.Time
	DataFile    string
	DataPoints  int
	TimeSpan    float64
	Planets     []habitability.Planet
}

// data is the resolved template context.
type data struct {
	Rule           string
	Station        string
	Date           string
	DataFile       string
	DataPoints     int
	TimeSpan       float64
	HasData        bool
	Assessments    []habitability.Assessment
	HabitableZone  []habitability.Assessment
	Excluded       []habitability.Assessment
	Recommended    habitability.Assessment
	HasRecommended bool
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"upper": strings.ToUpper,
}).Parse(`{{.Rule}}
TRAPPIST-1 HABITABILITY ANALYSIS REPORT
{{.Rule}}

STATION: {{.Station}}
DATE: {{.Date}}
MISSION: Habitable Zone Analysis

{{.Rule}}
DATA ANALYSIS
{{.Rule}}

{{if .HasData}}Data File: {{.DataFile}}
Data Points: {{.DataPoints}}
Time Span: {{printf "%.1f" .TimeSpan}} days
{{else}}No observation dataset loaded.
{{end}}Analysis Method: Transit photometry + period folding

Habitable Zone Periods:
{{range .HabitableZone}}  {{printf "%.2f" .Planet.Period}} days ({{.Planet.Name}})
{{end}}
Excluded Periods (non-habitable):
{{range .Excluded}}  {{printf "%.2f" .Planet.Period}} days ({{.Planet.Name}}, {{.Planet.Class}})
{{end}}
{{.Rule}}
HABITABILITY ASSESSMENT
{{.Rule}}

{{range $i, $a := .Assessments}}{{printf "%d. %s" (inc $i) $a.Planet.Name}}
   Orbital Period: {{printf "%.2f" $a.Planet.Period}} days
   Temperature: {{printf "%.0f" $a.Planet.TempC}} C
   Habitability Score: {{printf "%.2f" $a.Score}}/1.0
   Assessment: {{upper $a.Verdict}}

{{end}}{{.Rule}}
CONCLUSION
{{.Rule}}

{{if .HasRecommended}}Observational priority: {{.Recommended.Planet.Name}}
({{printf "%.2f" .Recommended.Planet.Period}} day period, score {{printf "%.2f" .Recommended.Score}}).
The remaining habitable zone planets warrant follow-up study.
{{else}}No habitable zone planets identified in the catalog.
{{end}}
{{.Rule}}
APPROVED BY: {{.Station}}
{{.Rule}}
`))

// Generate renders the report for the given input.
func Generate(in Input) (string, error) {
	if in.Station == "" {
		in.Station = "unnamed-station"
	}
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now()
	}
	planets := in.Planets
	if len(planets) == 0 {
		planets = habitability.TRAPPIST1()
	}

	assessments := habitability.AssessAll(planets)

	d := data{
		Rule:       rule,
		Station:    in.Station,
		Date:       in.GeneratedAt.Format("2006-01-02"),
		DataFile:   in.DataFile,
		DataPoints: in.DataPoints,
		TimeSpan:   in.TimeSpan,
		HasData:    in.DataPoints > 0,
	}
	for _, a := range assessments {
		d.Assessments = append(d.Assessments, a)
		if a.Planet.Class == habitability.ClassHabitable {
			d.HabitableZone = append(d.HabitableZone, a)
			if !d.HasRecommended || a.Score > d.Recommended.Score {
				d.Recommended = a
				d.HasRecommended = true
			}
		} else {
			d.Excluded = append(d.Excluded, a)
		}
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, d); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}
