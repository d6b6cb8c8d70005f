package engine

import (
	"bytes"
	"fmt"
	"maps"
	"text/template"

	"github.com/flosch/pongo2/v6"
)

// Render renders the template source text with the chosen engine. name is
// used in error messages.
func (e *Engine) Render(kind Kind, name, text string, data map[string]any) (string, error) {
	e.logger.Debug("rendering template", "engine", kind, "template", name)
	switch kind {
	case KindText:
		return e.renderText(name, text, data)
	case KindPongo2:
		return e.renderPongo2(name, text, data)
	}
	return "", fmt.Errorf("unknown engine %q", kind)
}

func (e *Engine) renderText(name, text string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Funcs(e.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) renderPongo2(name, text string, data map[string]any) (string, error) {
	if err := e.InstallPongo2(); err != nil {
		return "", err
	}
	tmpl, err := pongo2.FromString(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	ctx := e.Pongo2Context()
	maps.Copy(ctx, data)
	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return out, nil
}
