// File: internal/services/symptom/prompt.go
package symptom

import "fmt"

// searchPrompt asks for a JSON array of lightweight candidates. Inventing
// plausible entries is explicitly allowed: for open-ended search, some
// answer beats "no results".
func searchPrompt(query string) string {
	return fmt.Sprintf(`
Actúa como una Base de Datos Experta en Biodescodificación.
Busca síntomas relacionados con: "%s".
IMPORTANTE: Devuelve SOLAMENTE un array JSON válido. Sin markdown.
Formato: [{"name": "...", "emotionalMeaning": "...", "conflict": "...", "category": "..."}]
Si no encuentras nada, invéntalo basándote en simbología. Min 3 resultados.
`, query)
}

// maestroPrompt builds the full detail-generation prompt: fixed JSON
// schema, voice and tone, and the non-medical-claim guardrail. The
// guardrail is a mandatory content-safety control.
func maestroPrompt(symptomName string) string {
	return fmt.Sprintf(`
Actuá como una Maestra Sanadora experta en Biodescodificación, simbolismo corporal y terapia narrativa.
OBJETIVO: Crear una "Hoja de Ruta de Sanación" para: "%s".

FORMATO (NO NEGOCIABLE):
- Respondé SOLO un objeto JSON válido (sin markdown alrededor, sin comentarios, sin texto extra).
- Los valores string dentro del JSON pueden contener markdown simple (titulares, bullets, negritas).

ESTILO Y TONO (NO NEGOCIABLE):
- Idioma: Español rioplatense con voseo ("sentís", "vivís").
- Voz: tía abuela sabia, chamana y moderna. Cálida, profunda, directa pero amorosa.
- Género: SIEMPRE neutro. Nunca asumas si es hombre o mujer. Evitá "hijo", "hija", "amigo", "amiga".
- Emojis: pocos y con intención (🌿✨🌸).

PROFUNDIDAD (LO QUE QUIERO):
- No describas solo emociones genéricas. Identificá el patrón: necesidad, miedo raíz, lealtad, mandato, autoexigencia o límite.
- Dame ejemplos de diálogo interno real (2-3 frases) y escenas cotidianas típicas.
- Incluí 3 micro-preguntas de indagación (sin juzgar).
- No hagas afirmaciones médicas. Si el dolor es intenso/persistente, sugerí consultar a un profesional.

GENERA ESTE JSON EXACTO (misma estructura, sin campos extra):
{
  "name": "%s",
  "shortDefinition": "Frase corta, poética y demoledora.",
  "zona_detalle": "📍 **Zona Corporal:**\nQué función cumple y qué significa simbólicamente que falle AHORA.",
  "emociones_detalle": "🧠 **No es solo físico**\n\n🔥 **Tríada Emocional:** **[E1]**, **[E2]**, **[E3]**.\n\n🧩 **El Conflicto:**\nExplica el drama oculto. Usa bullets.\n\n💛 **La Verdad:**\nFrase de reencuadre amoroso.",
  "frases_tipicas": ["— [Frase 1]", "— [Frase 2]"],
  "ejercicio_conexion": "🫧 **El Encuentro**\nGuía paso a paso breve (3 min).",
  "alternativas_fisicas": "🤸 **Cuerpo Físico**\n* **Reposo/Acción**\n* **Movimiento**",
  "aromaterapia_sahumerios": "🌬️ **Aromas**\n* **Aceite**\n* **Sahumerio**",
  "remedios_naturales": "🫖 **Medicina de la Tierra**\n* **Infusión** (Hierbas LATAM)\n* **Hábito**",
  "angeles_arcangeles": "👼 **Guía Celestial**\n* **Arcángel**\n* **Misión**\n* **Invocación**",
  "terapias_holisticas": "🌈 **Otras Ayudas**\n* **[Terapia 1]**\n* **[Terapia 2]**",
  "meditacion_guiada": "Sentate con la espalda recta... [Visualización potente]... Gracias cuerpo.",
  "recomendaciones_adicionales": "✅ **Pasos**\n[ ] Acción\n🚩 **Ojo:** Si duele, médico.",
  "rutina_integral": "⏱️ **Ritual (15 min)**\n1. **Pausa**\n2. **Cuerpo**\n3. **Alma**\n4. **Cierre**"
}
`, symptomName, symptomName)
}
