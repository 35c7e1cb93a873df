package roster

import "testing"

func TestNormalizeCourse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Primero", "1RO"},
		{"PRIMERO", "1RO"},
		{"primero", "1RO"},
		{"1ro", "1RO"},
		{"1RO", "1RO"},
		{"1°", "1RO"},
		{"1º", "1RO"},
		{"1", "1RO"},
		{"1.", "1RO"},
		{"Segundo", "2DO"},
		{"2do", "2DO"},
		{"Tercero", "3RO"},
		{"Cuarto", "4TO"},
		{"Quinto", "5TO"},
		{"Sexto", "6TO"},
		{"6to", "6TO"},
		{"  Primero  ", "1RO"},
		{"Pri mero", "PRI MERO"}, // NBSP is a space, not glue
		{"Séptimo", "SEPTIMO"},        // unknown: accent-folded uppercase key
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCourse(tc.in); got != tc.want {
			t.Errorf("NormalizeCourse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeParallel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A", "A"},
		{"a", "A"},
		{" a ", "A"},
		{"Paralelo A", "A"},
		{"paralelo b", "B"},
		{"PARALELO: C", "C"},
		{"á", "A"},
		{"Ñ", "N"},
		{"1", "1"}, // no Latin letter: normalized form passes through
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeParallel(tc.in); got != tc.want {
			t.Errorf("NormalizeParallel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEquivalenceClasses(t *testing.T) {
	courseVariants := []string{"Primero", "1ro", "1°", " PRIMERO ", "1"}
	for _, v := range courseVariants {
		if got := NormalizeCourse(v); got != "1RO" {
			t.Errorf("course variant %q normalized to %q", v, got)
		}
	}

	parallelVariants := []string{"A", "a", "Paralelo A", " á "}
	for _, v := range parallelVariants {
		if got := NormalizeParallel(v); got != "A" {
			t.Errorf("parallel variant %q normalized to %q", v, got)
		}
	}
}

func TestNormalizeNameStripsControlCharacters(t *testing.T) {
	if got := normalizeName("Pri\x00mero\x7f"); got != "PRIMERO" {
		t.Errorf("control characters should vanish, got %q", got)
	}
	if got := normalizeName("a\tb\nc"); got != "ABC" {
		t.Errorf("tab and newline are control characters, got %q", got)
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M", "M"},
		{"m", "M"},
		{"Masculino", "M"},
		{"HOMBRE", "M"},
		{"h", "M"},
		{"F", "F"},
		{"femenino", "F"},
		{"Mujer", "F"},
		{"", ""},
		{"X", "X"},
	}
	for _, tc := range cases {
		if got := normalizeGender(tc.in); got != tc.want {
			t.Errorf("normalizeGender(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
