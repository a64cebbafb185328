package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/etnz/pnlreport"
	"github.com/yuin/goldmark"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templates embed.FS

// DefaultTitle is the report title when none is configured.
const DefaultTitle = "组合盈亏看板"

// Options holds configuration for rendering a report.
type Options struct {
	Title     string    // Page title, DefaultTitle if empty.
	Currency  string    // Label shown next to amounts, none if empty.
	Generated time.Time // Generation time shown in the header, omitted if zero.
}

func (o Options) title() string {
	if strings.TrimSpace(o.Title) == "" {
		return DefaultTitle
	}
	return o.Title
}

type card struct {
	Title string
	Value string
	Class string
}

type bucket struct {
	Label  string
	Totals pnlreport.Totals
}

// page is the data handed to the report template.
type page struct {
	*pnlreport.ReportContext
	Title     string
	Currency  string
	Generated string
	Cards     []card
	Buckets   []bucket
}

// markdown converts external narrative and quality texts. Raw HTML in the
// texts is not rendered.
var markdown = goldmark.New(goldmark.WithRendererOptions(goldhtml.WithHardWraps()))

func renderMarkdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// renderText renders external texts as markdown. Generated texts are shown
// verbatim, line by line.
func renderText(s string, src pnlreport.TextSource) (template.HTML, error) {
	if src == pnlreport.External {
		return renderMarkdown(s)
	}
	return template.HTML(`<p class="plain">` + template.HTMLEscapeString(s) + `</p>`), nil
}

func pnlClass(m pnlreport.Money) string {
	switch m.Sign() {
	case 1:
		return "positive"
	case -1:
		return "negative"
	default:
		return ""
	}
}

var funcs = template.FuncMap{
	"text":     renderText,
	"pnlClass": pnlClass,
	"signed":   func(m pnlreport.Money) string { return m.SignedString() },
	"pct":      func(p pnlreport.Percent) string { return p.SignedString() },
}

var reportTemplate = template.Must(template.New("report.html").Funcs(funcs).ParseFS(templates, "templates/report.html"))

// HTML writes the report as a self-contained HTML page.
func HTML(w io.Writer, rc *pnlreport.ReportContext, opts Options) error {
	p := page{
		ReportContext: rc,
		Title:         opts.title(),
		Currency:      opts.Currency,
		Cards:         summaryCards(rc.Base),
		Buckets: []bucket{
			{Label: pnlreport.Long.String(), Totals: rc.Longs},
			{Label: pnlreport.Short.String(), Totals: rc.Shorts},
		},
	}
	if !opts.Generated.IsZero() {
		p.Generated = opts.Generated.Format(time.DateTime)
	}
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, p); err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func summaryCards(t pnlreport.Totals) []card {
	return []card{
		{Title: "总市值", Value: t.MarketValue.String()},
		{Title: "总成本", Value: t.CostBasis.String()},
		{Title: "净盈亏", Value: t.PnL.SignedString(), Class: pnlClass(t.PnL)},
		{Title: "净盈亏%", Value: t.PnLPct.SignedString(), Class: pnlClass(t.PnL)},
	}
}
