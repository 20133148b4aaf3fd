// Package parser turns the free text returned for a discovery request into
// an intro paragraph and a list of table rows.
package parser

import (
	"strings"

	"eventkompass/models"
)

// Result is the structured view of one response text.
type Result struct {
	Intro  string               `json:"intro"`
	Events []models.ParsedEvent `json:"events"`
}

// header keywords that mark the first cell of a table header row
var headerKeywords = map[string]bool{
	"title": true,
	"titel": true,
}

var emphasis = strings.NewReplacer("**", "", "*", "", "__", "")

// Parse makes a single pass over text. Lines before the first table row that
// are neither blank nor headings form the intro; rows with at least two cells
// that are not header or separator rows become events.
func Parse(text string) Result {
	res := Result{Events: []models.ParsedEvent{}}

	var intro []string
	inTable := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if isTableRow(line) {
			inTable = true
			if ev, ok := parseRow(line); ok {
				res.Events = append(res.Events, ev)
			}
			continue
		}
		if inTable || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		intro = append(intro, line)
	}

	res.Intro = strings.TrimSpace(strings.Join(intro, "\n"))
	return res
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.Contains(line[1:], "|")
}

func cells(line string) []string {
	var out []string
	for _, c := range strings.Split(line, "|") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func parseRow(line string) (models.ParsedEvent, bool) {
	cs := cells(line)
	if len(cs) < 2 {
		return models.ParsedEvent{}, false
	}
	if headerKeywords[strings.ToLower(stripEmphasis(cs[0]))] || isSeparator(cs[1]) {
		return models.ParsedEvent{}, false
	}

	ev := models.ParsedEvent{
		Title: stripEmphasis(cs[0]),
		Date:  cs[1],
	}
	if len(cs) > 2 {
		ev.Description = cs[2]
	}
	return ev, true
}

// isSeparator matches markdown alignment cells such as "---" or ":--:".
func isSeparator(cell string) bool {
	return strings.Trim(cell, "-:") == "" && strings.Contains(cell, "-")
}

func stripEmphasis(s string) string {
	return strings.Trim(strings.TrimSpace(emphasis.Replace(s)), "_ ")
}

// Headline picks a booking title out of a response: the first line longer than
// five characters with heading and emphasis markers removed. It returns fallback
// when no such line exists.
func Headline(text, fallback string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if len([]rune(line)) <= 5 {
			continue
		}
		title := strings.TrimSpace(strings.NewReplacer("#", "", "*", "").Replace(line))
		if title != "" {
			return title
		}
	}
	return fallback
}
