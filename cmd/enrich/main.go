// File: cmd/enrich/main.go
//
// Batch-populates the curated symptom catalog from archetype templates.
// Only slugs with no catalog entry are written; hand-curated documents
// are never overwritten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/repository/cache"
	"github.com/sanarte/go-sanarte/internal/services/symptom"
)

type archetype struct {
	name     string
	keywords []string
	zone     string
	emotions string
	remedies string
	aromas   string
}

var archetypes = []archetype{
	{
		name:     "digestivo",
		keywords: []string{"estomago", "colon", "intestino", "gastritis", "acidez", "nauseas", "estrenimiento", "hemorroides"},
		zone:     "📍 **Zona Corporal:**\nTu sistema digestivo procesa lo que la vida te sirve. Cuando algo 'no baja', el cuerpo lo dice primero.",
		emotions: "🧠 **No es solo físico**\n\n🔥 **Tríada Emocional:** **Rabia contenida**, **Control**, **Contrariedad**.\n\n🧩 **El Conflicto:**\n* Situaciones que no aceptás o no podés tragar.\n* Ira acumulada en las entrañas.\n\n💛 **La Verdad:**\nNo necesitás digerir todo lo que te sirven.",
		remedies: "🫖 **Medicina de la Tierra**\n* **Infusión** de manzanilla o boldo después de comer.\n* **Hábito:** una comida al día en silencio, masticando despacio.",
		aromas:   "🌬️ **Aromas**\n* **Aceite** de limón, depurativo.\n* **Sahumerio** de menta para aliviar pesadez.",
	},
	{
		name:     "estructural",
		keywords: []string{"espalda", "cuello", "hombros", "rodillas", "lumbar", "ciatica", "artritis", "contracturas", "bruxismo"},
		zone:     "📍 **Zona Corporal:**\nTu estructura te sostiene y carga. Cuando duele, está cargando más de lo que te corresponde.",
		emotions: "🧠 **No es solo físico**\n\n🔥 **Tríada Emocional:** **Sobrecarga**, **Desvalorización**, **Falta de apoyo**.\n\n🧩 **El Conflicto:**\n* Llevar el peso de otros sin pedir ayuda.\n* Exigirte sostener lo insostenible.\n\n💛 **La Verdad:**\nSoltar no es fallar. Es hacer lugar.",
		remedies: "🫖 **Medicina de la Tierra**\n* **Infusión** de cola de caballo y jengibre.\n* **Hábito:** estiramientos suaves al despertar.",
		aromas:   "🌬️ **Aromas**\n* **Aceite** de romero para el movimiento.\n* **Sahumerio** de palo santo para aflojar.",
	},
	{
		name:     "emocional",
		keywords: []string{"ansiedad", "insomnio", "palpitaciones", "taquicardia", "mareos", "vertigo", "cansancio"},
		zone:     "📍 **Zona Corporal:**\nTu sistema nervioso marca el ritmo. Cuando se acelera o se apaga, pide otra velocidad de vida.",
		emotions: "🧠 **No es solo físico**\n\n🔥 **Tríada Emocional:** **Miedo al futuro**, **Hipervigilancia**, **Desconfianza**.\n\n🧩 **El Conflicto:**\n* Querer controlar lo incontrolable.\n* No poder bajar la guardia ni de noche.\n\n💛 **La Verdad:**\nLa vida te sostiene incluso cuando no la dirigís.",
		remedies: "🫖 **Medicina de la Tierra**\n* **Infusión** de tilo, pasionaria o melisa.\n* **Hábito:** respiración 4-7-8 antes de dormir.",
		aromas:   "🌬️ **Aromas**\n* **Aceite** de lavanda sobre la almohada.\n* **Sahumerio** de incienso para aquietar.",
	},
}

func main() {
	dbPath := flag.String("db", "sanarte.db", "path to the sqlite database")
	dryRun := flag.Bool("dry-run", false, "list what would be written without writing")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.CatalogEntry{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	catalog := cache.NewCatalogRepository(db)

	written, skipped, err := enrich(context.Background(), catalog, symptom.KnownSymptomNames, *dryRun)
	if err != nil {
		log.Fatalf("enrichment failed: %v", err)
	}

	log.Printf("done: %d written, %d already curated", written, skipped)
}

// enrich writes an archetype document for every name without a catalog
// entry. Existing entries are never touched: hand-curated documents win
// over templates.
func enrich(ctx context.Context, catalog cache.CatalogRepository, names []string, dryRun bool) (written, skipped int, _ error) {
	for _, name := range names {
		slug := symptom.Slugify(name)

		_, err := catalog.Get(ctx, slug)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return written, skipped, fmt.Errorf("catalog read failed for %q: %w", slug, err)
		}

		if dryRun {
			fmt.Printf("would write %s (%s)\n", slug, matchArchetype(slug).name)
			written++
			continue
		}

		if err := catalog.Upsert(ctx, slug, buildDocument(name, slug)); err != nil {
			return written, skipped, fmt.Errorf("catalog write failed for %q: %w", slug, err)
		}
		log.Printf("enriched %s (%s)", slug, matchArchetype(slug).name)
		written++
	}
	return written, skipped, nil
}

func matchArchetype(slug string) archetype {
	for _, a := range archetypes {
		for _, kw := range a.keywords {
			if strings.Contains(slug, kw) {
				return a
			}
		}
	}
	// Emotional archetype is the safest generic reading.
	return archetypes[len(archetypes)-1]
}

func buildDocument(name, slug string) *domain.SymptomDetail {
	a := matchArchetype(slug)
	return &domain.SymptomDetail{
		Name:                       name,
		ShortDefinition:            fmt.Sprintf("%s: tu cuerpo eligió este lugar para contarte algo que venís postergando.", name),
		ZonaDetalle:                a.zone,
		EmocionesDetalle:           a.emotions,
		FrasesTipicas:              []string{"— No puedo más con todo esto.", "— Nadie se da cuenta de lo que cargo."},
		EjercicioConexion:          "🫧 **El Encuentro**\nApoyá una mano donde duele. Respirá tres veces hondo y preguntale qué necesita. Escuchá sin apuro (3 min).",
		AlternativasFisicas:        "🤸 **Cuerpo Físico**\n* **Reposo/Acción:** alterná descanso real con movimiento suave.\n* **Movimiento:** caminata corta y consciente, sin pantalla.",
		AromaterapiaSahumerios:     a.aromas,
		RemediosNaturales:          a.remedies,
		AngelesArcangeles:          "👼 **Guía Celestial**\n* **Arcángel:** Rafael, el que sana.\n* **Misión:** recordarte que pedir ayuda también es sanar.\n* **Invocación:** \"Acompañá mi cuerpo mientras aprende a soltar.\"",
		TerapiasHolisticas:         "🌈 **Otras Ayudas**\n* **Biodescodificación** con acompañamiento.\n* **Reiki** o terapia de polaridad.",
		MeditacionGuiada:           "Sentate con la espalda recta. Llevá el aire hasta la zona que duele y imaginá una luz tibia que la envuelve y la afloja. Quedate ahí unas respiraciones. Gracias cuerpo.",
		RecomendacionesAdicionales: "✅ **Pasos**\n[ ] Anotá hoy qué estabas viviendo cuando empezó.\n[ ] Elegí una sola carga para soltar esta semana.\n🚩 **Ojo:** si el dolor es intenso o persistente, consultá a un profesional de la salud.",
		RutinaIntegral:             "⏱️ **Ritual (15 min)**\n1. **Pausa:** tres respiraciones profundas.\n2. **Cuerpo:** estiramiento o infusión.\n3. **Alma:** escribí una frase de lo que sentís.\n4. **Cierre:** agradecé a tu cuerpo el aviso.",
	}
}
