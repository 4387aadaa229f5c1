// File: internal/services/symptom/fallback.go
package symptom

import "github.com/sanarte/go-sanarte/internal/domain"

// fallbackSymptoms is the static list served when search generation fails.
// Search can fall back safely because it returns a list, not a document
// claiming to decode one specific symptom.
var fallbackSymptoms = []domain.SearchResult{
	{Name: "Dolor de Cabeza", EmotionalMeaning: "Desvalorización intelectual, autoexigencia excesiva.", Conflict: "Querer controlar todo racionalmente.", Category: "Cabeza", IsFallback: true},
	{Name: "Dolor de Espalda", EmotionalMeaning: "Cargas emocionales, falta de apoyo percibido.", Conflict: "Llevar el peso del mundo.", Category: "Huesos", IsFallback: true},
	{Name: "Ansiedad", EmotionalMeaning: "Miedo al futuro, desconfianza en la vida.", Conflict: "Querer controlar lo incontrolable.", Category: "Emocional", IsFallback: true},
	{Name: "Gastritis", EmotionalMeaning: "Rabia contenida, lo que 'no trago'.", Conflict: "Contrariedad indigesta.", Category: "Digestivo", IsFallback: true},
	{Name: "Gripe", EmotionalMeaning: "Necesidad de descanso, 'hasta aquí'.", Conflict: "Conflicto de límites.", Category: "Respiratorio", IsFallback: true},
}

// FallbackResults returns a copy of the static list with the underlying
// error message attached to the first element for observability.
func FallbackResults(errorMessage string) []domain.SearchResult {
	results := make([]domain.SearchResult, len(fallbackSymptoms))
	copy(results, fallbackSymptoms)
	if errorMessage == "" {
		errorMessage = "Error de conexión"
	}
	results[0].ErrorMessage = errorMessage
	return results
}

// KnownSymptomNames backs the zero-cost local autocomplete. Kept in memory;
// no lookup against this list ever touches the network.
var KnownSymptomNames = []string{
	"Acidez",
	"Acné",
	"Alergias",
	"Anemia",
	"Ansiedad",
	"Artritis",
	"Asma",
	"Bruxismo",
	"Cansancio Crónico",
	"Ciática",
	"Colon Irritable",
	"Contracturas",
	"Dolor de Cabeza",
	"Dolor de Cuello",
	"Dolor de Espalda",
	"Dolor de Garganta",
	"Dolor de Hombros",
	"Dolor de Rodillas",
	"Dolor Lumbar",
	"Dolor Menstrual",
	"Eczema",
	"Estreñimiento",
	"Fibromialgia",
	"Gastritis",
	"Gripe",
	"Hemorroides",
	"Herpes Labial",
	"Hipertensión",
	"Hipotiroidismo",
	"Insomnio",
	"Mareos",
	"Migraña",
	"Náuseas",
	"Palpitaciones",
	"Psoriasis",
	"Resfriado",
	"Sinusitis",
	"Sobrepeso",
	"Taquicardia",
	"Tos",
	"Urticaria",
	"Vértigo",
	"Zumbido en los Oídos",
}
