package ai

import (
	"fmt"
	"strings"

	"eventkompass/models"
)

func eventsPrompt(category models.Category, location string, lang models.Language) string {
	if lang == models.LanguageEN {
		return fmt.Sprintf(`Search for current %s events in or around %s, Germany.
Provide a structured list with titles, dates, and short descriptions.
If it's dining, provide restaurant recommendations.
Where possible put the events in a markdown table with the columns Title | Date | Description.`, category, location)
	}
	return fmt.Sprintf(`Suche nach aktuellen %s Events in oder um %s, Deutschland.
Gib eine strukturierte Liste mit Titeln, Daten und kurzen Beschreibungen aus.
Wenn es Restaurants sind, nenne Empfehlungen.
Wenn möglich, stelle die Events als Markdown-Tabelle mit den Spalten Titel | Datum | Beschreibung dar.`, category, location)
}

func classifyPrompt(text string) string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return fmt.Sprintf(`Classify the following search query for an event platform in Germany.
Pick exactly one category out of: %s.
Festivent covers festivals, concerts and parties, Sports covers matches and races,
Dining covers restaurants and food, Career covers job fairs, meetups and workshops.
If the query names a German city or region, return it as location, otherwise null.

Query: %q`, strings.Join(names, ", "), text)
}

const transcribePrompt = "Transcribe the following audio precisely. If the audio is in German, output German text. " +
	"If it is in English, output English text. Return only the transcription text."

func errorText(lang models.Language) string {
	if lang == models.LanguageEN {
		return "Error loading events."
	}
	return "Fehler beim Laden der Events."
}
