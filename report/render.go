package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/crop_report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("crop_report.html").Funcs(template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatDatePtr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatMoney": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"abs": func(v float64) float64 {
			if v < 0 {
				return -v
			}
			return v
		},
	}).ParseFS(templateFS, "templates/crop_report.html"),
)

// RenderHTML renders the assembled report into the printable HTML document
// handed to the PDF renderer.
func RenderHTML(rep *Report) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, rep); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return buf.String(), nil
}
