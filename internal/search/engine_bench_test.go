package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/saharah/saharah/internal/keyword"
	"github.com/saharah/saharah/internal/models"
)

func benchCatalog(collections, sections int) *models.Catalog {
	cat := &models.Catalog{Generation: 1}
	words := []string{"inheritance", "dower", "maintenance", "custody", "harassment", "khula", "property", "witness"}
	for c := 0; c < collections; c++ {
		col := &models.ReferenceCollection{ID: fmt.Sprintf("law-%d", c), Title: fmt.Sprintf("Law %d", c), MainCategory: models.LegalLaws}
		for s := 0; s < sections; s++ {
			text := strings.Repeat(words[(c+s)%len(words)]+" of a woman under this section ", 4)
			col.Sections = append(col.Sections, &models.ReferenceSection{Reference: fmt.Sprintf("Section %d", s), Text: text})
		}
		cat.Collections = append(cat.Collections, col)
	}
	return cat
}

func BenchmarkEngine_Search(b *testing.B) {
	idx, err := keyword.NewMemIndex()
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()
	e := NewEngine(idx)
	ctx := context.Background()
	if _, err := e.Reindex(ctx, benchCatalog(10, 100)); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Search(ctx, &models.SearchQuery{Query: "custody woman"})
	}
}

func BenchmarkEngine_Reindex(b *testing.B) {
	idx, err := keyword.NewMemIndex()
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()
	e := NewEngine(idx)
	ctx := context.Background()
	cat := benchCatalog(10, 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cat.Generation = uint64(i + 1)
		_, _ = e.Reindex(ctx, cat)
	}
}

func BenchmarkHighlight(b *testing.B) {
	text := strings.Repeat("The husband shall pay the dower in full at the time of marriage. ", 40)
	terms := []string{"dower"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Highlight(text, terms, 200)
	}
}
