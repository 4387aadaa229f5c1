// File: internal/services/symptom/parse.go
package symptom

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sanarte/go-sanarte/internal/domain"
)

// stripCodeFences removes markdown fencing around generated output.
// Strict-JSON mode is not always perfectly unwrapped upstream.
func stripCodeFences(text string) string {
	t := strings.ReplaceAll(text, "```json", "")
	t = strings.ReplaceAll(t, "```", "")
	return strings.TrimSpace(t)
}

// parseDetail treats generated text as untrusted input: parse, then check
// every schema field before anything reaches a caller or the cache.
func parseDetail(symptomName, text string) (*domain.SymptomDetail, error) {
	var detail domain.SymptomDetail
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &detail); err != nil {
		return nil, NewShapeError(symptomName, "generated document is not valid JSON", err)
	}

	if err := validateDetail(&detail); err != nil {
		return nil, NewShapeError(symptomName, err.Error(), nil)
	}

	return &detail, nil
}

func validateDetail(d *domain.SymptomDetail) error {
	fields := map[string]string{
		"name":                        d.Name,
		"shortDefinition":             d.ShortDefinition,
		"zona_detalle":                d.ZonaDetalle,
		"emociones_detalle":           d.EmocionesDetalle,
		"ejercicio_conexion":          d.EjercicioConexion,
		"alternativas_fisicas":        d.AlternativasFisicas,
		"aromaterapia_sahumerios":     d.AromaterapiaSahumerios,
		"remedios_naturales":          d.RemediosNaturales,
		"angeles_arcangeles":          d.AngelesArcangeles,
		"terapias_holisticas":         d.TerapiasHolisticas,
		"meditacion_guiada":           d.MeditacionGuiada,
		"recomendaciones_adicionales": d.RecomendacionesAdicionales,
		"rutina_integral":             d.RutinaIntegral,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("generated document is missing field %q", name)
		}
	}

	if len(d.FrasesTipicas) == 0 {
		return fmt.Errorf("generated document is missing field %q", "frases_tipicas")
	}
	for _, frase := range d.FrasesTipicas {
		if strings.TrimSpace(frase) == "" {
			return fmt.Errorf("generated document has an empty entry in %q", "frases_tipicas")
		}
	}

	return nil
}

// parseSearchResults parses the generated candidate array.
func parseSearchResults(text string) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &results); err != nil {
		return nil, fmt.Errorf("generated results are not a valid JSON array: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("generated results are empty")
	}
	return results, nil
}
