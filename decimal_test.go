package decimal

import "testing"

func TestParseString(t *testing.T) {
	tests := []struct {
		input string
		want  string
		scale int32
	}{
		{"345.23499600293850", "345.23499600293850", 14},
		{"-123.4E-5", "-0.001234", 6},
		{"-1.455E-20", "-1.455E-20", 23},
	}
	for _, tt := range tests {
		d, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if d.Scale() != tt.scale {
			t.Errorf("Parse(%q).Scale() = %d, want %d", tt.input, d.Scale(), tt.scale)
		}
		if got := d.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParse_errors(t *testing.T) {
	tests := []string{"", ".", "e5", "1.2.3", "1e", "1e+", "+-1", "1.2e1.5"}
	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestFromBigIntScale(t *testing.T) {
	d := FromBigIntScale(MustParse("12334560000").unscaled, 5)
	if got := d.String(); got != "123345.60000" {
		t.Errorf("FromBigIntScale(12334560000, 5).String() = %q, want %q", got, "123345.60000")
	}
}

func TestToInt32Wraparound(t *testing.T) {
	d := MustParse("23423419083091823091283933")
	if got := d.ToInt32(); got != -249268259 {
		t.Errorf("ToInt32() = %d, want -249268259", got)
	}
}

func TestSetScale(t *testing.T) {
	d := MustParse("100000.374")
	up, err := SetScale(d, 2, Up)
	if err != nil {
		t.Fatalf("SetScale(Up) failed: %v", err)
	}
	if got := up.String(); got != "100000.38" {
		t.Errorf("SetScale(100000.374, 2, Up) = %q, want %q", got, "100000.38")
	}
	halfUp, err := SetScale(d, 2, HalfUp)
	if err != nil {
		t.Fatalf("SetScale(HalfUp) failed: %v", err)
	}
	if got := halfUp.String(); got != "100000.37" {
		t.Errorf("SetScale(100000.374, 2, HalfUp) = %q, want %q", got, "100000.37")
	}
}

func TestFromInt64Scale(t *testing.T) {
	d := FromInt64Scale(1234, 8)
	if got := d.String(); got != "0.00001234" {
		t.Errorf("FromInt64Scale(1234, 8).String() = %q, want %q", got, "0.00001234")
	}
}

func TestStripTrailingZeros(t *testing.T) {
	d := MustParse("600.0")
	stripped := StripTrailingZeros(d)
	if stripped.Scale() != -2 {
		t.Errorf("StripTrailingZeros(600.0).Scale() = %d, want -2", stripped.Scale())
	}
	if Compare(stripped, d) != 0 {
		t.Errorf("StripTrailingZeros(600.0) changed value: got %v, want equivalent to %v", stripped, d)
	}
}

func TestAbsContext(t *testing.T) {
	d := MustParse("-12380945E+61")
	mc := MustNewMathContext(6, HalfDown)
	got, err := d.AbsContext(mc)
	if err != nil {
		t.Fatalf("AbsContext failed: %v", err)
	}
	want := MustParse("1.23809E+68")
	if got.String() != want.String() {
		t.Errorf("AbsContext = %v, want %v", got, want)
	}
	if got.Scale() != want.Scale() || !Equal(got, want) {
		t.Errorf("AbsContext representation = (%v,%d), want (%v,%d)", got.UnscaledValue(), got.Scale(), want.UnscaledValue(), want.Scale())
	}
}

func TestEqualVsCompare(t *testing.T) {
	a := MustParse("1.00")
	b := MustFromFloat64(1.000000)
	if Equal(a, b) {
		t.Errorf("Equal(1.00, fromDouble(1.000000)) = true, want false")
	}
	if Compare(a, b) != 0 {
		t.Errorf("Compare(1.00, fromDouble(1.000000)) = %d, want 0", Compare(a, b))
	}
}

func TestAdditiveInverse(t *testing.T) {
	a := MustParse("42.5")
	sum := Add(a, a.Neg())
	if Compare(sum, Zero) != 0 {
		t.Errorf("a + (-a) = %v, want value 0", sum)
	}
}

func TestSubNegateSymmetry(t *testing.T) {
	a := MustParse("10.25")
	b := MustParse("3.5")
	lhs := Sub(a, b)
	rhs := Sub(b, a).Neg()
	if !Equal(lhs, rhs) {
		t.Errorf("a-b = %v, -(b-a) = %v, want equal", lhs, rhs)
	}
}

func TestMultiplicativeScale(t *testing.T) {
	a := MustParse("1.23")
	b := MustParse("4.5678")
	got, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if got.Scale() != a.Scale()+b.Scale() {
		t.Errorf("scale(a*b) = %d, want %d", got.Scale(), a.Scale()+b.Scale())
	}
}

func TestScaleIdempotence(t *testing.T) {
	a := MustParse("123.456")
	widened, err := SetScale(a, 10, Unnecessary)
	if err != nil {
		t.Fatalf("SetScale widen failed: %v", err)
	}
	back, err := SetScale(widened, a.Scale(), Unnecessary)
	if err != nil {
		t.Fatalf("SetScale narrow failed: %v", err)
	}
	if !Equal(back, a) {
		t.Errorf("setScale(setScale(a,10),3) = %v, want %v", back, a)
	}
}

func TestMovePointInverse(t *testing.T) {
	a := MustParse("123.456")
	for _, n := range []int32{0, 3, -3, 10} {
		right, err := MovePointRight(a, n)
		if err != nil {
			t.Fatalf("MovePointRight failed: %v", err)
		}
		back, err := MovePointLeft(right, n)
		if err != nil {
			t.Fatalf("MovePointLeft failed: %v", err)
		}
		if !Equal(back, a) {
			t.Errorf("movePointLeft(movePointRight(a,%d),%d) = %v, want %v", n, n, back, a)
		}
	}
}

func TestHashAgreesWithEqual(t *testing.T) {
	a := MustParse("55.5500")
	b := MustParse("55.5500")
	if !Equal(a, b) {
		t.Fatalf("expected a and b to be Equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("Hash mismatch for Equal decimals")
	}
}

func TestRoundingModeBounds(t *testing.T) {
	a := MustParse("7.35")
	floor, err := SetScale(a, 1, Floor)
	if err != nil {
		t.Fatalf("SetScale(Floor) failed: %v", err)
	}
	ceil, err := SetScale(a, 1, Ceiling)
	if err != nil {
		t.Fatalf("SetScale(Ceiling) failed: %v", err)
	}
	if Compare(floor, a) > 0 {
		t.Errorf("setScale(a,1,Floor) = %v > a = %v", floor, a)
	}
	if Compare(a, ceil) > 0 {
		t.Errorf("a = %v > setScale(a,1,Ceiling) = %v", a, ceil)
	}
}

func TestDivide(t *testing.T) {
	a := MustParse("10")
	b := MustParse("4")
	got, err := Divide(a, b, HalfUp)
	if err != nil {
		t.Fatalf("Divide failed: %v", err)
	}
	if got.String() != "3" {
		// a.Scale() is 0, so the result scale is 0: 10/4 = 2.5 rounds HalfUp to 3.
		t.Errorf("Divide(10,4,HalfUp) = %v, want 3", got)
	}
}

func TestDivideScale(t *testing.T) {
	a := MustParse("10")
	b := MustParse("4")
	got, err := DivideScale(a, b, 2, HalfUp)
	if err != nil {
		t.Fatalf("DivideScale failed: %v", err)
	}
	if got.String() != "2.50" {
		t.Errorf("DivideScale(10,4,2,HalfUp) = %v, want 2.50", got)
	}
}

func TestDivide_byZero(t *testing.T) {
	if _, err := Divide(One, Zero, Down); err == nil {
		t.Errorf("Divide(1,0,Down) succeeded, want ArithmeticError")
	}
}

func TestFromFloat64_special(t *testing.T) {
	if _, err := FromFloat64(notANumber()); err == nil {
		t.Errorf("FromFloat64(NaN) succeeded, want FormatError")
	}
	z, err := FromFloat64(0)
	if err != nil || !z.IsZero() {
		t.Errorf("FromFloat64(0) = (%v, %v), want (0, nil)", z, err)
	}
}

func notANumber() float64 {
	var zero float64
	return zero / zero
}

func TestToFloat64RoundTrip(t *testing.T) {
	d := MustParse("3.140000")
	if got := d.ToFloat64(); got != 3.14 {
		t.Errorf("ToFloat64() = %v, want 3.14", got)
	}
}

func TestMaxMin(t *testing.T) {
	a := MustParse("1.5")
	b := MustParse("2.25")
	if got := Max(a, b); !Equal(got, b) {
		t.Errorf("Max(1.5,2.25) = %v, want 2.25", got)
	}
	if got := Min(a, b); !Equal(got, a) {
		t.Errorf("Min(1.5,2.25) = %v, want 1.5", got)
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	d := MustParse("-42.125")
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var round Decimal
	if err := round.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
	}
	if !Equal(round, d) {
		t.Errorf("round-trip via MarshalText/UnmarshalText = %v, want %v", round, d)
	}
}

func TestScanValue(t *testing.T) {
	var d Decimal
	if err := d.Scan("12.50"); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if got := d.String(); got != "12.50" {
		t.Errorf("Scan(\"12.50\").String() = %q, want %q", got, "12.50")
	}
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if v != "12.50" {
		t.Errorf("Value() = %v, want %q", v, "12.50")
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("Scan(nil) = (%v, %v), want (0, nil)", d, err)
	}
}

func TestRoundToContext_carry(t *testing.T) {
	d := MustParse("999")
	mc := MustNewMathContext(2, HalfUp)
	got, err := d.RoundToContext(mc)
	if err != nil {
		t.Fatalf("RoundToContext failed: %v", err)
	}
	if got.String() != "1.0E+3" {
		t.Errorf("RoundToContext(999, precision=2, HalfUp) = %v, want 1.0E+3", got)
	}
}
