package directory

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/models"
)

func ids(ls []*models.Lawyer) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name           string
		lang           i18n.Language
		query          string
		city           string
		specialization string
		want           []string
	}{
		{"everyone", i18n.English, "", Any, Any, []string{"1", "2", "3", "4", "5", "6"}},
		{"empty constraints", i18n.English, "", "", "", []string{"1", "2", "3", "4", "5", "6"}},
		{"name case-insensitive", i18n.English, "FATIMA", Any, Any, []string{"2"}},
		{"city", i18n.English, "", "lahore", Any, []string{"2", "6"}},
		{"specialization", i18n.English, "", Any, "custody", []string{"3", "5"}},
		{"city and specialization", i18n.English, "", "karachi", "property", []string{"4"}},
		{"urdu name", i18n.Urdu, "حنا", Any, Any, []string{"6"}},
		{"english query against urdu names", i18n.Urdu, "Hina", Any, Any, []string{}},
		{"no city match", i18n.English, "", "faisalabad", Any, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(tt.lang, tt.query, tt.city, tt.specialization))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	l, ok := Get(i18n.Urdu, "1")
	if !ok {
		t.Fatal("lawyer 1 not found")
	}
	want := &models.Lawyer{
		ID:              "1",
		Name:            "ایڈووکیٹ عائشہ خان",
		City:            "karachi",
		CityLabel:       "کراچی",
		Specializations: []string{"family", "violence"},
		SpecLabels:      []string{"فیملی لاء", "گھریلو تشدد"},
		Phone:           "+92-300-1234567",
		Gender:          "خاتون",
		Email:           "ayesha.khan@lawfirm.com",
		Experience:      "12 سال",
		Education:       "کراچی یونیورسٹی سے LLB، پنجاب یونیورسٹی سے LLM",
		Languages:       "اردو، انگریزی، سندھی",
		BarCouncil:      "سندھ بار کونسل",
	}
	l.About = ""
	if diff := cmp.Diff(want, l); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	other, ok := Get(i18n.English, "5")
	if !ok || other.Email != "" || other.CityLabel != "Rawalpindi" {
		t.Errorf("lawyer 5 = %+v", other)
	}
	if _, ok := Get(i18n.English, "99"); ok {
		t.Error("unknown id should not be found")
	}
}

func TestLabels(t *testing.T) {
	if got := SpecializationLabel(i18n.English, "harassment"); got != "Harassment" {
		t.Errorf("got %q", got)
	}
	if got := SpecializationLabel(i18n.Urdu, "tax"); got != "tax" {
		t.Errorf("unknown specialization should fall back to value, got %q", got)
	}
	if got := CityLabel(i18n.Urdu, "islamabad"); got != "اسلام آباد" {
		t.Errorf("got %q", got)
	}

	cities := Cities(i18n.English)
	if len(cities) != 6 || cities[0].Value != Any || cities[0].Label != "All Cities" {
		t.Errorf("cities = %+v", cities)
	}
	specs := Specializations(i18n.Urdu)
	if len(specs) != 6 || specs[0].Label != "تمام مہارتیں" {
		t.Errorf("specializations = %+v", specs)
	}
}

func TestLocalizeDoesNotShareSlices(t *testing.T) {
	l, _ := Get(i18n.English, "2")
	l.Specializations[0] = "changed"
	again, _ := Get(i18n.English, "2")
	if again.Specializations[0] != "harassment" {
		t.Error("directory data was mutated through a returned lawyer")
	}
}
