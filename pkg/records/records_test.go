package records

import "testing"

func TestStringRendering(t *testing.T) {
	r := Record{"a": "x", "b": nil, "c": 12, "d": 3.5, "e": int64(7)}
	cases := []struct {
		col  string
		want string
	}{
		{"a", "x"},
		{"b", ""},
		{"c", "12"},
		{"d", "3.5"},
		{"e", "7"},
		{"missing", ""},
	}
	for _, c := range cases {
		if got := r.String(c.col); got != c.want {
			t.Fatalf("String(%q) = %q, want %q", c.col, got, c.want)
		}
	}
}

func TestIntParsing(t *testing.T) {
	r := Record{"s": " 42 ", "f": 9.0, "frac": 9.5, "blank": "", "bad": "x1", "n": nil}
	if n, ok := r.Int("s"); !ok || n != 42 {
		t.Fatalf("Int(s) = %d,%v", n, ok)
	}
	if n, ok := r.Int("f"); !ok || n != 9 {
		t.Fatalf("Int(f) = %d,%v", n, ok)
	}
	for _, col := range []string{"frac", "blank", "bad", "n", "missing"} {
		if _, ok := r.Int(col); ok {
			t.Fatalf("Int(%q) unexpectedly ok", col)
		}
	}
}

func TestFloatParsing(t *testing.T) {
	r := Record{"s": "1.25", "i": 3, "blank": "  "}
	if f, ok := r.Float("s"); !ok || f != 1.25 {
		t.Fatalf("Float(s) = %v,%v", f, ok)
	}
	if f, ok := r.Float("i"); !ok || f != 3 {
		t.Fatalf("Float(i) = %v,%v", f, ok)
	}
	if _, ok := r.Float("blank"); ok {
		t.Fatal("Float(blank) unexpectedly ok")
	}
}
