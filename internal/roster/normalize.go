package roster

import (
	"regexp"
	"strings"
)

// Course and parallel names arrive from free-text cells typed by school staff,
// so comparison keys have to absorb spelling, spacing, diacritic and Unicode
// space variations before lookup.

var (
	unicodeSpaceReplacer = strings.NewReplacer(
		" ", " ", // no-break space
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		" ", " ",
		"　", " ", // ideographic space
	)

	accentReplacer = strings.NewReplacer(
		"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
		"Ñ", "N", "º", "", "°", "", ".", "", ",", "",
	)

	whitespaceRun = regexp.MustCompile(`\s+`)

	courseDigitPattern = regexp.MustCompile(`^([1-6])\s*(RO|DO|TO)?$`)

	courseOrdinals = map[string]string{
		"PRIMERO": "1RO",
		"SEGUNDO": "2DO",
		"TERCERO": "3RO",
		"CUARTO":  "4TO",
		"QUINTO":  "5TO",
		"SEXTO":   "6TO",
	}

	digitOrdinals = map[string]string{
		"1": "1RO", "2": "2DO", "3": "3RO", "4": "4TO", "5": "5TO", "6": "6TO",
	}
)

// normalizeName produces the canonical comparison key shared by course and
// parallel matching.
func normalizeName(s string) string {
	s = unicodeSpaceReplacer.Replace(s)
	s = stripControl(s)
	s = strings.ToUpper(strings.TrimSpace(s))
	s = accentReplacer.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

// NormalizeCourse maps the many ways staff write a grade level ("Primero",
// "1ro", "1°", "1") onto the canonical 1RO..6TO token.
func NormalizeCourse(s string) string {
	key := normalizeName(s)
	if canonical, ok := courseOrdinals[key]; ok {
		return canonical
	}
	if m := courseDigitPattern.FindStringSubmatch(key); m != nil {
		return digitOrdinals[m[1]]
	}
	return key
}

// NormalizeParallel reduces a parallel name to its section letter, absorbing
// "Paralelo A", "A" and "a " to "A". Values with no Latin letter are returned
// as their normalized form.
func NormalizeParallel(s string) string {
	key := normalizeName(s)
	key = strings.TrimSpace(strings.TrimPrefix(key, "PARALELO"))
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return key
}

// normalizeGender maps common gender spellings onto M/F. Unrecognized values
// pass through unchanged so row validation can reject them.
func normalizeGender(s string) string {
	g := strings.ToUpper(strings.TrimSpace(s))
	switch g {
	case "M", "MASCULINO", "HOMBRE", "H":
		return "M"
	case "F", "FEMENINO", "MUJER":
		return "F"
	}
	return g
}
