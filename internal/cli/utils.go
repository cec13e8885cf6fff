// Package cli provides output writers for the Saharah command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat returns the output format named by s; anything but "json" is text.
func ParseFormat(s string) OutputFormat {
	if strings.EqualFold(s, string(OutputJSON)) {
		return OutputJSON
	}
	return OutputText
}

const rule = "─────────────────────────────────────────────────────────"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCatalog writes collection summaries to w in the given format.
func WriteCatalog(w io.Writer, collections []*models.ReferenceCollection, format OutputFormat) error {
	summaries := make([]*models.CollectionSummary, len(collections))
	for i, c := range collections {
		summaries[i] = c.Summary()
	}
	if format == OutputJSON {
		return writeJSON(w, summaries)
	}
	fmt.Fprintf(w, "\n%d collections\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "[%s] %s\n", s.MainCategory, s.Title)
		fmt.Fprintf(w, "ID: %s | Category: %s | Sections: %d\n", s.ID, s.Category, s.SectionCount)
		if s.PDFPath != "" {
			fmt.Fprintf(w, "PDF: %s\n", s.PDFPath)
		}
		fmt.Fprintf(w, "\n%s\n\n", TruncateWords(s.Description, 30))
	}
	return nil
}

// WriteCollection writes one collection with all its sections.
func WriteCollection(w io.Writer, c *models.ReferenceCollection, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, c)
	}
	fmt.Fprintf(w, "\n%s\n%s\n", c.Title, strings.Repeat("=", len([]rune(c.Title))))
	fmt.Fprintf(w, "%s | %s\n\n%s\n\n", c.MainCategory, c.Category, c.Description)
	for i, s := range c.Sections {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%d. %s", i+1, s.Reference)
		if s.SourceName != "" {
			fmt.Fprintf(w, " (%s)", s.SourceName)
		}
		fmt.Fprintln(w)
		if len(s.ThemeTags) > 0 {
			fmt.Fprintf(w, "Tags: %s\n", strings.Join(s.ThemeTags, ", "))
		}
		fmt.Fprintf(w, "\n%s\n", s.Text)
		if s.Translation != "" {
			fmt.Fprintf(w, "\n%s\n", s.Translation)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteMenu writes a category menu, one entry per line.
func WriteMenu(w io.Writer, menu []string, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, menu)
	}
	for _, m := range menu {
		fmt.Fprintln(w, m)
	}
	return nil
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "\nFound %d results in %dms", response.Total, response.QueryTime)
	if response.AutoFuzzy {
		fmt.Fprint(w, " (fuzzy)")
	}
	fmt.Fprint(w, "\n\n")
	for _, r := range response.Results {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", r.Rank, r.Score)
		fmt.Fprintf(w, "%s | %s\n", r.CollectionTitle, r.Reference)
		fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(r.Snippet, 200))
	}
	return nil
}

// WriteLawyers writes directory entries to w in the given format.
func WriteLawyers(w io.Writer, lawyers []*models.Lawyer, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, lawyers)
	}
	fmt.Fprintf(w, "\n%d lawyers\n\n", len(lawyers))
	for _, l := range lawyers {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%s (%s)\n", l.Name, l.ID)
		fmt.Fprintf(w, "%s | %s\n", l.CityLabel, strings.Join(l.SpecLabels, ", "))
		fmt.Fprintf(w, "%s\n\n", l.Phone)
	}
	return nil
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
