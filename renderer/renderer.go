// Package renderer turns habit bank reports into markdown strings, rendered
// by the CLI through a terminal markdown viewer.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/habitwealth/habitbank"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are the helpers available to all templates.
var funcs = template.FuncMap{
	"emoji": func(t habitbank.AccountType) string { return t.Spec().Emoji },
	"name":  func(t habitbank.AccountType) string { return t.Spec().Name },
	"pct":   func(rate float64) string { return fmt.Sprintf("%.0f%%", rate*100) },
}

// StatementMarkdown renders a weekly statement to markdown.
func StatementMarkdown(s *habitbank.Statement) string {
	return renderTemplate("statement", "templates/statement.md", s)
}

// AnalysisMarkdown renders a portfolio analysis to markdown.
func AnalysisMarkdown(a *habitbank.Analysis) string {
	return renderTemplate("analysis", "templates/analysis.md", a)
}

// LedgerMarkdown renders the current state of a ledger to markdown.
func LedgerMarkdown(l *habitbank.Ledger) string {
	return renderTemplate("ledger", "templates/ledger.md", l)
}

// CatalogMarkdown renders the reward catalog to markdown.
func CatalogMarkdown(c habitbank.Catalog) string {
	// Templates iterate maps in key order, which is what we want here.
	return renderTemplate("catalog", "templates/catalog.md", c)
}

// renderTemplate is the generic utility behind all renderers.
func renderTemplate(name, file string, data any) string {
	content, err := templates.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}
