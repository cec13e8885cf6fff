// Package directory is the compiled-in lawyer directory.
package directory

import (
	"strings"

	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/models"
)

// Any disables a city or specialization constraint.
const Any = "all"

type profile struct {
	email      string
	experience i18n.Text
	education  i18n.Text
	languages  i18n.Text
	barCouncil i18n.Text
	about      i18n.Text
}

type entry struct {
	id              string
	name            i18n.Text
	city            string
	specializations []string
	phone           string
	profile         *profile
}

var female = i18n.Text{En: "Female", Ur: "خاتون"}

var cities = []struct {
	value string
	label i18n.Text
}{
	{"karachi", i18n.Text{En: "Karachi", Ur: "کراچی"}},
	{"lahore", i18n.Text{En: "Lahore", Ur: "لاہور"}},
	{"islamabad", i18n.Text{En: "Islamabad", Ur: "اسلام آباد"}},
	{"rawalpindi", i18n.Text{En: "Rawalpindi", Ur: "راولپنڈی"}},
	{"faisalabad", i18n.Text{En: "Faisalabad", Ur: "فیصل آباد"}},
}

var specializations = []struct {
	value string
	label i18n.Text
}{
	{"family", i18n.Text{En: "Family Law", Ur: "فیملی لاء"}},
	{"violence", i18n.Text{En: "Domestic Violence", Ur: "گھریلو تشدد"}},
	{"harassment", i18n.Text{En: "Harassment", Ur: "ہراساں کرنا"}},
	{"custody", i18n.Text{En: "Child Custody", Ur: "بچے کی تحویل"}},
	{"property", i18n.Text{En: "Property Rights", Ur: "جائیداد کے حقوق"}},
}

var lawyers = []entry{
	{
		id:              "1",
		name:            i18n.Text{En: "Advocate Ayesha Khan", Ur: "ایڈووکیٹ عائشہ خان"},
		city:            "karachi",
		specializations: []string{"family", "violence"},
		phone:           "+92-300-1234567",
		profile: &profile{
			email:      "ayesha.khan@lawfirm.com",
			experience: i18n.Text{En: "12 years", Ur: "12 سال"},
			education: i18n.Text{
				En: "LLB from University of Karachi, LLM from Punjab University",
				Ur: "کراچی یونیورسٹی سے LLB، پنجاب یونیورسٹی سے LLM",
			},
			languages:  i18n.Text{En: "Urdu, English, Sindhi", Ur: "اردو، انگریزی، سندھی"},
			barCouncil: i18n.Text{En: "Sindh Bar Council", Ur: "سندھ بار کونسل"},
			about: i18n.Text{
				En: "Advocate Ayesha Khan is a dedicated legal professional with over 12 years of experience in women's rights and family law. She has successfully represented numerous clients in cases related to domestic violence, divorce, and child custody. Her compassionate approach and strong legal expertise make her a trusted advocate for women seeking justice.",
				Ur: "ایڈووکیٹ عائشہ خان خواتین کے حقوق اور فیملی لاء میں 12 سال سے زیادہ تجربے کے ساتھ ایک سرشار قانونی پیشہ ور ہیں۔ انہوں نے گھریلو تشدد، طلاق، اور بچے کی تحویل سے متعلق معاملات میں متعدد مؤکلین کی کامیابی سے نمائندگی کی ہے۔ ان کا ہمدردانہ انداز اور مضبوط قانونی مہارت انہیں انصاف کی تلاش میں خواتین کے لیے ایک قابل اعتماد وکیل بناتی ہے۔",
			},
		},
	},
	{
		id:              "2",
		name:            i18n.Text{En: "Advocate Fatima Ali", Ur: "ایڈووکیٹ فاطمہ علی"},
		city:            "lahore",
		specializations: []string{"harassment", "violence"},
		phone:           "+92-301-2345678",
	},
	{
		id:              "3",
		name:            i18n.Text{En: "Advocate Sarah Ahmad", Ur: "ایڈووکیٹ سارہ احمد"},
		city:            "islamabad",
		specializations: []string{"custody", "family"},
		phone:           "+92-302-3456789",
	},
	{
		id:              "4",
		name:            i18n.Text{En: "Advocate Zainab Hassan", Ur: "ایڈووکیٹ زینب حسن"},
		city:            "karachi",
		specializations: []string{"property", "family"},
		phone:           "+92-303-4567890",
	},
	{
		id:              "5",
		name:            i18n.Text{En: "Advocate Mariam Sheikh", Ur: "ایڈووکیٹ مریم شیخ"},
		city:            "rawalpindi",
		specializations: []string{"harassment", "custody"},
		phone:           "+92-304-5678901",
	},
	{
		id:              "6",
		name:            i18n.Text{En: "Advocate Hina Malik", Ur: "ایڈووکیٹ حنا ملک"},
		city:            "lahore",
		specializations: []string{"violence", "family"},
		phone:           "+92-305-6789012",
	},
}

// Cities returns the city filter options, led by the "all" option.
func Cities(lang i18n.Language) []models.Option {
	opts := []models.Option{{Value: Any, Label: i18n.T(lang, "All Cities", "تمام شہر")}}
	for _, c := range cities {
		opts = append(opts, models.Option{Value: c.value, Label: c.label.In(lang)})
	}
	return opts
}

// Specializations returns the specialization filter options, led by the "all" option.
func Specializations(lang i18n.Language) []models.Option {
	opts := []models.Option{{Value: Any, Label: i18n.T(lang, "All Specializations", "تمام مہارتیں")}}
	for _, s := range specializations {
		opts = append(opts, models.Option{Value: s.value, Label: s.label.In(lang)})
	}
	return opts
}

// SpecializationLabel returns the localized label of a specialization, or value itself
// when it is unknown.
func SpecializationLabel(lang i18n.Language, value string) string {
	for _, s := range specializations {
		if s.value == value {
			return s.label.In(lang)
		}
	}
	return value
}

// CityLabel returns the localized name of a city, or value itself when it is unknown.
func CityLabel(lang i18n.Language, value string) string {
	for _, c := range cities {
		if c.value == value {
			return c.label.In(lang)
		}
	}
	return value
}

// Filter returns the lawyers whose localized name contains query (case-insensitive),
// located in city and practising specialization. An empty or Any city or
// specialization matches every lawyer.
func Filter(lang i18n.Language, query, city, specialization string) []*models.Lawyer {
	q := strings.ToLower(query)
	out := []*models.Lawyer{}
	for i := range lawyers {
		e := &lawyers[i]
		if !strings.Contains(strings.ToLower(e.name.In(lang)), q) {
			continue
		}
		if city != "" && city != Any && e.city != city {
			continue
		}
		if specialization != "" && specialization != Any && !contains(e.specializations, specialization) {
			continue
		}
		out = append(out, e.localize(lang))
	}
	return out
}

// Get returns the lawyer with id.
func Get(lang i18n.Language, id string) (*models.Lawyer, bool) {
	for i := range lawyers {
		if lawyers[i].id == id {
			return lawyers[i].localize(lang), true
		}
	}
	return nil, false
}

func (e *entry) localize(lang i18n.Language) *models.Lawyer {
	l := &models.Lawyer{
		ID:              e.id,
		Name:            e.name.In(lang),
		City:            e.city,
		CityLabel:       CityLabel(lang, e.city),
		Specializations: append([]string(nil), e.specializations...),
		SpecLabels:      make([]string, len(e.specializations)),
		Phone:           e.phone,
		Gender:          female.In(lang),
	}
	for i, s := range e.specializations {
		l.SpecLabels[i] = SpecializationLabel(lang, s)
	}
	if p := e.profile; p != nil {
		l.Email = p.email
		l.Experience = p.experience.In(lang)
		l.Education = p.education.In(lang)
		l.Languages = p.languages.In(lang)
		l.BarCouncil = p.barCouncil.In(lang)
		l.About = p.about.In(lang)
	}
	return l
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
