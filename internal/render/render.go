package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultDescription composes the ticket description from the base text
// plus optional notes and platform/URL sections, in that order.
const DefaultDescription = `{{ .Description }}{{ with .Notes }}

**Additional notes**:
{{ . }}{{ end }}{{ with .URL }}

**Platform/URL**: {{ . }}{{ end }}`

// DefaultPreview renders the interactive confirmation prompt shown
// before each ticket creation.
const DefaultPreview = `Create a bug with the following data?
  project:   {{ .ProjectKey }}
  type:      {{ .IssueType }}
  summary:   {{ .Summary | trim }}
{{- with .EpicKey }}
  epic:      {{ . }}
{{- end }}
{{- if .SprintID }}
  sprint:    {{ .SprintID }}
{{- end }}
  description: |
{{ .Description | indent 4 }}`

// TemplateFuncMap returns the helper functions available to templates.
func TemplateFuncMap() template.FuncMap {
	return sprig.TxtFuncMap()
}

// Renderer holds parsed templates for descriptions and previews.
type Renderer struct {
	description *template.Template
	preview     *template.Template
}

// New parses the given template bodies. Empty strings select the
// built-in defaults.
func New(descriptionTmpl, previewTmpl string) (*Renderer, error) {
	if descriptionTmpl == "" {
		descriptionTmpl = DefaultDescription
	}
	if previewTmpl == "" {
		previewTmpl = DefaultPreview
	}

	desc, err := template.New("description").Funcs(TemplateFuncMap()).Parse(descriptionTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse description template: %w", err)
	}
	prev, err := template.New("preview").Funcs(TemplateFuncMap()).Parse(previewTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}
	return &Renderer{description: desc, preview: prev}, nil
}

// Description renders the composed ticket description.
func (r *Renderer) Description(data any) (string, error) {
	return execute(r.description, data)
}

// Preview renders the confirmation prompt for a draft.
func (r *Renderer) Preview(data any) (string, error) {
	return execute(r.preview, data)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
