// ABOUTME: Prompt templates for the AI assist operations
// ABOUTME: Renders embedded text/template files with CRM data
package ai

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/dustin/go-humanize"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Prompt template names.
const (
	promptInsights     = "insights.tmpl"
	promptCoaching     = "coaching.tmpl"
	promptEmail        = "email.tmpl"
	promptDealRisk     = "dealrisk.tmpl"
	promptIntelligence = "intelligence.tmpl"
)

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"money": money,
	"json":  toJSON,
}).ParseFS(promptFS, "prompts/*.tmpl"))

func money(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return "$" + humanize.CommafWithDigits(n, 2)
	case int64:
		return "$" + humanize.Comma(n)
	case int:
		return "$" + humanize.Comma(int64(n))
	default:
		return fmt.Sprintf("$%v", v)
	}
}

func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// renderPrompt executes the named template with data.
func renderPrompt(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
