package lawdata

import (
	"strings"

	"github.com/saharah/saharah/internal/labels"
	"github.com/saharah/saharah/internal/models"
)

// CategoryMenu returns the "All Categories" sentinel, both main-category names, then every
// collection category in first-seen order regardless of main category.
func CategoryMenu(cat *models.Catalog) []string {
	menu := []string{models.AllCategories, string(models.LegalLaws), string(models.IslamicLaws)}
	if cat == nil {
		return menu
	}
	cats := make([]string, 0, len(cat.Collections))
	for _, c := range cat.Collections {
		cats = append(cats, c.Category)
	}
	return append(menu, labels.Unique(cats)...)
}

// SubcategoryMenu returns the unique categories of collections in the given main category.
// There is no sentinel; callers that want one prepend it.
func SubcategoryMenu(cat *models.Catalog, main models.MainCategory) []string {
	var cats []string
	if cat != nil {
		for _, c := range cat.Collections {
			if c.MainCategory == main {
				cats = append(cats, c.Category)
			}
		}
	}
	return labels.Unique(cats)
}

// Filter returns collections whose title or description contains query (case-insensitive)
// and whose category matches. An empty category or the AllCategories sentinel matches every
// collection; a main-category name matches by bucket.
func Filter(cat *models.Catalog, query, category string) []*models.ReferenceCollection {
	out := []*models.ReferenceCollection{}
	if cat == nil {
		return out
	}
	q := strings.ToLower(query)
	for _, c := range cat.Collections {
		if !matchesCategory(c, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesCategory(c *models.ReferenceCollection, category string) bool {
	switch category {
	case "", models.AllCategories:
		return true
	case string(models.LegalLaws), string(models.IslamicLaws):
		return string(c.MainCategory) == category
	default:
		return c.Category == category
	}
}
