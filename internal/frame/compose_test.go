package frame

import (
	"bytes"
	"image/color"
	"testing"
)

func TestComposeIdentity(t *testing.T) {
	b, _ := New(8, 8)
	b.Fill(color.NRGBA{R: 40, G: 80, B: 120, A: 200})

	got, err := Compose(b, nil)
	if err != nil {
		t.Fatalf("Compose(b, nil): %v", err)
	}
	if !bytes.Equal(got.Bytes(), b.Bytes()) {
		t.Error("Compose(frame, nil) is not byte-for-byte identical")
	}

	got, err = Compose(nil, b)
	if err != nil {
		t.Fatalf("Compose(nil, b): %v", err)
	}
	if !bytes.Equal(got.Bytes(), b.Bytes()) {
		t.Error("Compose(nil, frame) is not byte-for-byte identical")
	}
}

func TestComposeOpaqueContentWins(t *testing.T) {
	bg, _ := NewFilled(4, 4, color.NRGBA{R: 255, A: 255})
	fg, _ := NewFilled(4, 4, color.NRGBA{G: 255, A: 255})

	out, err := Compose(bg, fg)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(2, 2); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("opaque content did not cover background: %v", got)
	}
}

func TestComposeTransparentContentShowsBackground(t *testing.T) {
	bg, _ := NewFilled(4, 4, color.NRGBA{R: 255, A: 255})
	fg, _ := New(4, 4) // fully transparent

	out, err := Compose(bg, fg)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(0, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("transparent content altered background: %v", got)
	}
}

func TestComposeHalfAlphaBlend(t *testing.T) {
	bg, _ := NewFilled(1, 1, color.NRGBA{R: 255, A: 255})
	fg, _ := NewFilled(1, 1, color.NRGBA{B: 255, A: 128})

	out, err := Compose(bg, fg)
	if err != nil {
		t.Fatal(err)
	}
	got := out.At(0, 0)
	if got.A != 255 {
		t.Errorf("over an opaque background alpha must stay 255, got %d", got.A)
	}
	// 50/50 mix within rounding tolerance.
	if got.R < 126 || got.R > 129 || got.B < 126 || got.B > 129 {
		t.Errorf("blend off: %v", got)
	}
}

func TestComposeDimensionMismatch(t *testing.T) {
	a, _ := New(4, 4)
	b, _ := New(8, 8)
	if _, err := Compose(a, b); err == nil {
		t.Error("mismatched dimensions accepted")
	}
}

func TestComposeNoLayers(t *testing.T) {
	if _, err := Compose(nil, nil); err == nil {
		t.Error("Compose(nil, nil) must error")
	}
}
