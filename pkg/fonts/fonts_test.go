package fonts

import "testing"

func TestFontTextWidth(t *testing.T) {
	f := Default()

	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"abc", 30},
		{"häß", 30},
		{"2024-01-01", 100},
	}
	for _, tt := range tests {
		if got := f.TextWidth(tt.text); got != tt.want {
			t.Errorf("TextWidth(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
	if f.LineHeight() != 16 {
		t.Errorf("LineHeight() = %v, want 16", f.LineHeight())
	}
}

func TestFontOrDefault(t *testing.T) {
	if got := (Font{}).OrDefault(); got != Default() {
		t.Errorf("OrDefault() = %v, want %v", got, Default())
	}
	custom := Font{Width: 8, Height: 12}
	if got := custom.OrDefault(); got != custom {
		t.Errorf("OrDefault() = %v, want %v", got, custom)
	}
	if (Font{Width: -1, Height: 5}).TextWidth("abc") != 0 {
		t.Error("negative width should measure as zero")
	}
}

func TestBasicFace(t *testing.T) {
	f := Basic()
	if got := f.TextWidth("abcd"); got != 28 {
		t.Errorf("TextWidth(abcd) = %v, want 28", got)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight() = %v, want > 0", f.LineHeight())
	}
}

func TestGoRegular(t *testing.T) {
	f, err := GoRegular(16)
	if err != nil {
		t.Fatalf("GoRegular: %v", err)
	}
	short, long := f.TextWidth("i"), f.TextWidth("iiii")
	if short <= 0 || long <= short {
		t.Errorf("TextWidth not monotonic: %v, %v", short, long)
	}
	if f.TextWidth("W") <= f.TextWidth("i") {
		t.Error("proportional face should measure W wider than i")
	}
}

func TestFontFace(t *testing.T) {
	goFont := Font{Face: FaceGo, Size: 16}
	face, err := GoRegular(16)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := goFont.TextWidth("Wide"), face.TextWidth("Wide"); got != want {
		t.Errorf("TextWidth = %v, want the Go face's %v", got, want)
	}
	if goFont.TextWidth("iiii") >= goFont.TextWidth("WWWW") {
		t.Error("go face should measure proportionally")
	}
	if goFont.LineHeight() != face.LineHeight() || goFont.FontSize() != 16 {
		t.Errorf("line height %v, size %v", goFont.LineHeight(), goFont.FontSize())
	}
	if goFont.IsZero() || goFont.OrDefault() != goFont {
		t.Error("a font with a face is set")
	}

	basic := Font{Face: FaceBasic}
	if basic.TextWidth("abcd") != 28 || basic.CharWidth() != 7 {
		t.Errorf("basic TextWidth = %v, CharWidth = %v", basic.TextWidth("abcd"), basic.CharWidth())
	}
	if Default().CharWidth() != DefaultWidth {
		t.Errorf("CharWidth = %v, want %v", Default().CharWidth(), DefaultWidth)
	}
}

func TestFontValidate(t *testing.T) {
	tests := []struct {
		font Font
		ok   bool
	}{
		{Default(), true},
		{Font{Face: FaceGo, Size: 12}, true},
		{Font{Face: FaceBasic}, true},
		{Font{Face: "comic"}, false},
		{Font{Width: -1}, false},
		{Font{Face: FaceGo, Size: -3}, false},
	}
	for _, tt := range tests {
		if err := tt.font.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%v) = %v, want ok=%v", tt.font, err, tt.ok)
		}
	}
}
