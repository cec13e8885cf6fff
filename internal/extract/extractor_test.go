package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtract_plain(t *testing.T) {
	e := NewExtractor()
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"notes.txt", []byte("Hello world\nLine 2"), "Hello world\nLine 2"},
		{"NOTES.MD", []byte("caf\xc3\xa9"), "café"},
		{"bad.txt", []byte("hello\x80world"), "hello\uFFFDworld"},
		{"windows.txt", []byte("\xef\xbb\xbfline 1\r\nline 2"), "line 1\nline 2"},
	}
	for _, tt := range tests {
		got, err := e.Extract(tt.name, tt.content)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got.Text != tt.want || got.Pages != 0 {
			t.Errorf("%s: got %+v", tt.name, got)
		}
	}
}

func TestExtract_excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Asset")
	f.SetCellValue("Sheet1", "A2", "House")
	f.SetCellValue("Sheet1", "B2", "Lahore")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := NewExtractor().Extract("assets.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "Asset\nHouse\tLahore" || got.Pages != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestExtract_excelSheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Dower")
	if _, err := f.NewSheet("Witnesses"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	f.SetCellValue("Witnesses", "A3", "Ayesha")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := NewExtractor().Extract("nikah.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Pages != 2 {
		t.Errorf("Pages = %d, want 2", got.Pages)
	}
	if got.Text != "Sheet1\nDower\n\nWitnesses\nAyesha" {
		t.Errorf("got %q", got.Text)
	}
}

func docxWith(parts map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range parts {
		fw, _ := w.Create(name)
		_, _ = fw.Write([]byte(body))
	}
	_ = w.Close()
	return buf.Bytes()
}

const docBody = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p w:rsidR="00A1"><w:r><w:t>Nikah</w:t></w:r><w:r><w:t xml:space="preserve"> Nama </w:t></w:r></w:p></w:body></w:document>`

func TestExtract_docx(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
	}{
		{"default path", map[string]string{"word/document.xml": docBody}},
		{"content types override", map[string]string{
			"[Content_Types].xml": `<Types><Override PartName="/word/document2.xml" ContentType="` + docxMainContentType + `"/></Types>`,
			"word/document2.xml":  docBody,
		}},
		{"content type before part name", map[string]string{
			"[Content_Types].xml": `<Types><Override ContentType="` + docxMainContentType + `" PartName="/word/document3.xml"/></Types>`,
			"word/document3.xml":  docBody,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExtractor().Extract("certificate.docx", docxWith(tt.parts))
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got.Text != "Nikah Nama" {
				t.Errorf("got %q", got.Text)
			}
		})
	}
}

func TestExtract_docxErrors(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("x.docx", []byte("not a zip")); err == nil {
		t.Error("expected error for non-zip docx")
	}
	if _, err := e.Extract("x.docx", docxWith(map[string]string{"other.xml": "x"})); err == nil {
		t.Error("expected error for missing document part")
	}
}

func TestExtract_invalidPDF(t *testing.T) {
	if _, err := NewExtractor().Extract("papers.pdf", []byte("%PDF-garbage")); err == nil {
		t.Error("expected error for invalid PDF")
	}
}

func TestExtract_unsupported(t *testing.T) {
	e := NewExtractor()
	for _, name := range []string{"photo.jpg", "scan.png", "old.doc", "noext"} {
		_, err := e.Extract(name, []byte("data"))
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: want ErrUnsupported, got %v", name, err)
		}
		if e.Supported(name) {
			t.Errorf("%s: Supported = true", name)
		}
	}
	if !e.Supported("Marriage Certificate.PDF") {
		t.Error("pdf should be supported")
	}
}
