package source

import (
	"image/color"
	"testing"
)

func TestOpenRefs(t *testing.T) {
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"", "nil", false},
		{"#FF0000", "solid", false},
		{"#XYZ", "", true},
		{"qr:https://example.com/connect", "qr", false},
		{"pdf:deck.pdf#3", "pdf", false},
		{"pdf:deck.pdf", "pdf", false},
		{"pdf:deck.pdf#0", "", true},
		{"backgrounds/mountain.jpg", "image", false},
	}
	for _, tt := range tests {
		p, err := Open(tt.ref)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Open(%q): expected error", tt.ref)
			}
			continue
		}
		if err != nil {
			t.Errorf("Open(%q): %v", tt.ref, err)
			continue
		}
		var got string
		switch p.(type) {
		case nil:
			got = "nil"
		case *SolidColor:
			got = "solid"
		case *QR:
			got = "qr"
		case *PDFPage:
			got = "pdf"
		case *ImageFile:
			got = "image"
		}
		if got != tt.want {
			t.Errorf("Open(%q) = %s provider, want %s", tt.ref, got, tt.want)
		}
	}
}

func TestPDFRefPageParsing(t *testing.T) {
	p, err := Open("pdf:announce.pdf#3")
	if err != nil {
		t.Fatal(err)
	}
	pdf := p.(*PDFPage)
	if pdf.Path != "announce.pdf" || pdf.Page != 2 {
		t.Errorf("got path=%q page=%d, want announce.pdf page 2 (zero-based)", pdf.Path, pdf.Page)
	}
}

func TestSolidColorBackground(t *testing.T) {
	s := &SolidColor{Color: color.NRGBA{R: 10, G: 20, B: 30, A: 255}}
	img, err := s.Background(1920, 1080)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("unexpected color: %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestQRBackground(t *testing.T) {
	s := &QR{Payload: "https://example.com"}
	img, err := s.Background(320, 180)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 180 {
		t.Errorf("qr size %d, want 180", img.Bounds().Dx())
	}

	if _, err := (&QR{}).Background(320, 180); err == nil {
		t.Error("empty payload accepted")
	}
}
