// Package deck turns scraped deck tables into decks and compares decks.
package deck

import (
	"strings"
	"unicode/utf8"

	"github.com/codyseavey/archimago/internal/models"
)

// ParseStats reports what the parser did with the input lines.
type ParseStats struct {
	Tables        int `json:"tables"`
	SkippedTables int `json:"skipped_tables"`
	Cards         int `json:"cards"`
	ManaLines     int `json:"mana_lines"`
	Dropped       int `json:"dropped"`
}

// ParseTables converts raw table text into a deck. Each table is a header line
// whose first token names the category, followed by card lines of the form
// "<count><name>". Single character lines are mana cost markers and are
// skipped; any other malformed line is dropped. Maybeboard tables are ignored
// unless includeMaybe is set.
func ParseTables(tables []string, includeMaybe bool) models.Deck {
	d, _ := ParseTablesWithStats(tables, includeMaybe)
	return d
}

// ParseTablesWithStats is ParseTables that also reports skipped and dropped lines.
func ParseTablesWithStats(tables []string, includeMaybe bool) (models.Deck, ParseStats) {
	d := models.NewDeck()
	var stats ParseStats

	for _, table := range tables {
		lines := strings.Split(table, "\n")

		head := header(lines[0])
		if head == "" {
			stats.SkippedTables++
			continue
		}
		if head == models.CategoryMaybeboard && !includeMaybe {
			stats.SkippedTables++
			continue
		}

		stats.Tables++
		d.AddCategory(head)

		for _, line := range lines[1:] {
			line = strings.TrimRight(line, "\r")

			if utf8.RuneCountInString(line) == 1 {
				stats.ManaLines++
				continue
			}

			name, count, ok := parseCardLine(line)
			if !ok {
				stats.Dropped++
				continue
			}

			d.Add(head, name, count)
			stats.Cards++
		}
	}

	return d, stats
}

func header(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseCardLine splits "2Lightning Bolt" into its name and count.
func parseCardLine(line string) (string, int, bool) {
	if len(line) < 2 {
		return "", 0, false
	}

	c := line[0]
	if c < '1' || c > '9' {
		return "", 0, false
	}

	name := strings.TrimSpace(line[1:])
	if name == "" {
		return "", 0, false
	}

	return name, int(c - '0'), true
}
