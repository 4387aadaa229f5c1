// File: internal/domain/symptom.go
package domain

// ChatMessage is one turn of a conversation sent to the generation proxy.
// Constructed per call, never persisted.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SearchResult is a lightweight symptom candidate returned by the search
// pipeline. Only whole result arrays are cached, never single entries.
type SearchResult struct {
	Name             string `json:"name"`
	EmotionalMeaning string `json:"emotionalMeaning"`
	Conflict         string `json:"conflict"`
	Category         string `json:"category"`
	IsFallback       bool   `json:"isFallback,omitempty"`
	ErrorMessage     string `json:"errorMessage,omitempty"`
}

// SymptomDetail is the full "hoja de ruta" document for one symptom.
// The field set is fixed; string values may contain simple markdown.
type SymptomDetail struct {
	Name                       string   `json:"name"`
	ShortDefinition            string   `json:"shortDefinition"`
	ZonaDetalle                string   `json:"zona_detalle"`
	EmocionesDetalle           string   `json:"emociones_detalle"`
	FrasesTipicas              []string `json:"frases_tipicas"`
	EjercicioConexion          string   `json:"ejercicio_conexion"`
	AlternativasFisicas        string   `json:"alternativas_fisicas"`
	AromaterapiaSahumerios     string   `json:"aromaterapia_sahumerios"`
	RemediosNaturales          string   `json:"remedios_naturales"`
	AngelesArcangeles          string   `json:"angeles_arcangeles"`
	TerapiasHolisticas         string   `json:"terapias_holisticas"`
	MeditacionGuiada           string   `json:"meditacion_guiada"`
	RecomendacionesAdicionales string   `json:"recomendaciones_adicionales"`
	RutinaIntegral             string   `json:"rutina_integral"`
}

// GenericPlaceholderDefinition is the short definition an earlier fallback
// path used to write into the cache. An entry carrying it is poisoned: it
// must be treated as a miss and overwritten on regeneration.
const GenericPlaceholderDefinition = "Tu cuerpo te habla a través de este síntoma."

// IsPoisoned reports whether the document is a known generic placeholder.
func (d *SymptomDetail) IsPoisoned() bool {
	return d.ShortDefinition == GenericPlaceholderDefinition
}

// IsComplete reports whether the document can be trusted as a cache or
// catalog hit. A document without the body-zone section is incomplete.
func (d *SymptomDetail) IsComplete() bool {
	return d != nil && d.ZonaDetalle != ""
}
