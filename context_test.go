package decimal

import "testing"

func TestMathContextRoundTrip(t *testing.T) {
	tests := []struct {
		precision int32
		mode      RoundingMode
		want      string
	}{
		{0, HalfUp, "precision=0 roundingMode=HalfUp"},
		{6, HalfDown, "precision=6 roundingMode=HalfDown"},
		{34, HalfEven, "precision=34 roundingMode=HalfEven"},
	}
	for _, tt := range tests {
		mc := MustNewMathContext(tt.precision, tt.mode)
		if got := mc.String(); got != tt.want {
			t.Errorf("MathContext(%d,%v).String() = %q, want %q", tt.precision, tt.mode, got, tt.want)
		}
		parsed, err := ParseMathContext(tt.want)
		if err != nil {
			t.Fatalf("ParseMathContext(%q) failed: %v", tt.want, err)
		}
		if parsed != mc {
			t.Errorf("ParseMathContext(%q) = %v, want %v", tt.want, parsed, mc)
		}
	}
}

func TestParseMathContext_fieldOrder(t *testing.T) {
	mc, err := ParseMathContext("roundingMode=FLOOR precision=3")
	if err != nil {
		t.Fatalf("ParseMathContext failed: %v", err)
	}
	if mc.Precision() != 3 || mc.RoundingMode() != Floor {
		t.Errorf("ParseMathContext(reordered) = %v, want precision=3 rounding=Floor", mc)
	}
}

func TestParseMathContext_errors(t *testing.T) {
	tests := []string{
		"",
		"precision=3",
		"precision=3 roundingMode=NOPE",
		"precision=-1 roundingMode=UP",
		"precisionX=3 roundingMode=UP",
		"precision=3 roundingMode=UP extra=1",
	}
	for _, input := range tests {
		if _, err := ParseMathContext(input); err == nil {
			t.Errorf("ParseMathContext(%q) succeeded, want error", input)
		}
	}
}

func TestNewMathContext_negativePrecision(t *testing.T) {
	if _, err := NewMathContextMode(-1, HalfUp); err == nil {
		t.Errorf("NewMathContextMode(-1, HalfUp) succeeded, want ArgumentError")
	}
}

func TestMathContextMarshalText(t *testing.T) {
	mc := MustNewMathContext(9, HalfEven)
	text, err := mc.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var round MathContext
	if err := round.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
	}
	if round != mc {
		t.Errorf("round-trip via MarshalText/UnmarshalText = %v, want %v", round, mc)
	}
}
