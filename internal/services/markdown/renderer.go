// File: internal/services/markdown/renderer.go
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sanarte/go-sanarte/internal/domain"
)

// RenderedSection is one detail field converted to HTML, in display order.
type RenderedSection struct {
	Key  string `json:"key"`
	HTML string `json:"html"`
}

// RenderedDetail is the HTML form of a symptom document for clients that
// do not render markdown themselves.
type RenderedDetail struct {
	Name     string            `json:"name"`
	Sections []RenderedSection `json:"sections"`
}

// Renderer converts the markdown carried inside detail documents to HTML.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts every markdown field of the document. The section order
// mirrors how the document reads top to bottom.
func (r *Renderer) Render(detail *domain.SymptomDetail) (*RenderedDetail, error) {
	if detail == nil {
		return nil, fmt.Errorf("nil detail document")
	}

	sections := []struct {
		key  string
		text string
	}{
		{"shortDefinition", detail.ShortDefinition},
		{"zona_detalle", detail.ZonaDetalle},
		{"emociones_detalle", detail.EmocionesDetalle},
		{"ejercicio_conexion", detail.EjercicioConexion},
		{"alternativas_fisicas", detail.AlternativasFisicas},
		{"aromaterapia_sahumerios", detail.AromaterapiaSahumerios},
		{"remedios_naturales", detail.RemediosNaturales},
		{"angeles_arcangeles", detail.AngelesArcangeles},
		{"terapias_holisticas", detail.TerapiasHolisticas},
		{"meditacion_guiada", detail.MeditacionGuiada},
		{"recomendaciones_adicionales", detail.RecomendacionesAdicionales},
		{"rutina_integral", detail.RutinaIntegral},
	}

	rendered := &RenderedDetail{Name: detail.Name}
	for _, s := range sections {
		html, err := r.convert(s.text)
		if err != nil {
			return nil, fmt.Errorf("could not render section %q: %w", s.key, err)
		}
		rendered.Sections = append(rendered.Sections, RenderedSection{Key: s.key, HTML: html})
	}

	// Typical phrases are a list, rendered as markdown bullet items.
	var frases bytes.Buffer
	for _, f := range detail.FrasesTipicas {
		frases.WriteString("* " + f + "\n")
	}
	html, err := r.convert(frases.String())
	if err != nil {
		return nil, fmt.Errorf("could not render section %q: %w", "frases_tipicas", err)
	}
	rendered.Sections = append(rendered.Sections, RenderedSection{Key: "frases_tipicas", HTML: html})

	return rendered, nil
}

func (r *Renderer) convert(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
