package lawdata

import (
	"path"

	"github.com/saharah/saharah/internal/models"
)

// Bucket is a top-level dataset partition and the sub-path its files live under.
type Bucket string

const (
	BucketLegal   Bucket = "legal"
	BucketIslamic Bucket = "islamic"
)

// basePath is the fixed root of all reference assets.
const basePath = "/data"

// MainCategory returns the catalog bucket label for b.
func (b Bucket) MainCategory() models.MainCategory {
	if b == BucketIslamic {
		return models.IslamicLaws
	}
	return models.LegalLaws
}

// Entry maps one source file to its catalog identity.
type Entry struct {
	JSONFile string
	PDFFile  string // empty when the collection has no companion PDF
	ID       string
	Category string
	Bucket   Bucket
}

// ResourcePath is the asset path of the entry's JSON file.
func (e Entry) ResourcePath() string {
	return AssetPath(e.Bucket, e.JSONFile)
}

// PDFPath is the asset path of the companion PDF, or "" when there is none.
func (e Entry) PDFPath() string {
	if e.PDFFile == "" {
		return ""
	}
	return AssetPath(e.Bucket, e.PDFFile)
}

// AssetPath joins the base path, bucket sub-path and file name.
func AssetPath(b Bucket, file string) string {
	return path.Join(basePath, string(b), file)
}

// Table is the ordered mapping table, one list per bucket.
type Table struct {
	Legal   []Entry
	Islamic []Entry
}

// Len returns the total number of entries.
func (t Table) Len() int {
	return len(t.Legal) + len(t.Islamic)
}

// DefaultTable is the compiled-in dataset. Changing the dataset means changing this table and
// the asset directory together.
var DefaultTable = Table{
	Legal: []Entry{
		{JSONFile: "dataset_penal_code.json", PDFFile: "Pakistan Penal Code.pdf", ID: "pakistan-penal-code", Category: "Criminal Law", Bucket: BucketLegal},
		{JSONFile: "kp-women-rights-enf-2019.json", PDFFile: "KP-Enforcement-of-Womens-Property-Rights-bill-2019.pdf", ID: "kp-women-property-rights-2019", Category: "Property Rights", Bucket: BucketLegal},
		{JSONFile: "muslim-family-law-ord.json", PDFFile: "Muslim-Family-Laws-Ordinance-1961.pdf", ID: "muslim-family-laws-1961", Category: "Family Law", Bucket: BucketLegal},
		{JSONFile: "prev-of-elec-crime-act-2016.json", PDFFile: "Prevention-of-Electronic-Crime-Act-2016.pdf", ID: "prevention-electronic-crime-2016", Category: "Cyber Crime", Bucket: BucketLegal},
		{JSONFile: "protec-harras-at-workspace-act2010.json", PDFFile: "Protection against harassment of women at workplace act 2010.pdf", ID: "harassment-workplace-2010", Category: "Workplace Rights", Bucket: BucketLegal},
		{JSONFile: "punjab-protec-act.json", PDFFile: "PUNJAB_PROTECTION_OF_WOMEN_AGAINST_VIOLENCE_ACT_2016.pdf", ID: "punjab-protection-violence-2016", Category: "Violence Protection", Bucket: BucketLegal},
		{JSONFile: "motor_veh_ord_1965.json", ID: "motor-vehicle-ordinance-1965", Category: "Traffic Law", Bucket: BucketLegal},
	},
	Islamic: []Entry{
		{JSONFile: "filtered_ahadith.json", ID: "filtered-ahadith", Category: "Hadith Collection", Bucket: BucketIslamic},
		{JSONFile: "filtered_ahadith2.json", ID: "filtered-ahadith-2", Category: "Hadith Collection 2", Bucket: BucketIslamic},
		{JSONFile: "herhaq_sahih_muslim_hadiths.json", ID: "sahih-muslim-hadiths", Category: "Sahih Muslim", Bucket: BucketIslamic},
	},
}
