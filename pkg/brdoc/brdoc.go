// Package brdoc provides validation and formatting for Brazilian tax
// identifiers (CPF and CNPJ) and phone numbers.
package brdoc

import (
	"regexp"
	"strings"
)

var (
	cpfPattern  = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// StripNonDigits removes everything that is not a decimal digit.
func StripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidateCPF reports whether input is a valid CPF in the canonical
// punctuated format XXX.XXX.XXX-XX, including both check digits.
func ValidateCPF(input string) bool {
	if !cpfPattern.MatchString(input) {
		return false
	}

	digits := toDigits(StripNonDigits(input))
	if len(digits) != 11 || allSame(digits) {
		return false
	}

	// First check digit: weights 10 down to 2 over the first 9 digits.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	if digits[9] != checkDigit(sum) {
		return false
	}

	// Second check digit: weights 11 down to 2 over the first 10 digits.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	return digits[10] == checkDigit(sum)
}

// ValidateCNPJ reports whether input is a valid CNPJ in the canonical
// punctuated format XX.XXX.XXX/XXXX-XX, including both check digits.
func ValidateCNPJ(input string) bool {
	if !cnpjPattern.MatchString(input) {
		return false
	}

	digits := toDigits(StripNonDigits(input))
	if len(digits) != 14 || allSame(digits) {
		return false
	}

	// First check digit: cyclical weights 5,4,3,2,9,8,7,6,5,4,3,2.
	sum := 0
	weight := 5
	for i := 0; i < 12; i++ {
		sum += digits[i] * weight
		if weight == 2 {
			weight = 9
		} else {
			weight--
		}
	}
	if digits[12] != checkDigit(sum) {
		return false
	}

	// Second check digit: cyclical weights 6,5,4,3,2,9,8,7,6,5,4,3,2.
	sum = 0
	weight = 6
	for i := 0; i < 13; i++ {
		sum += digits[i] * weight
		if weight == 2 {
			weight = 9
		} else {
			weight--
		}
	}
	return digits[13] == checkDigit(sum)
}

// FormatCPF formats an 11-digit string as XXX.XXX.XXX-XX. Input that does
// not contain exactly 11 digits is returned unchanged.
func FormatCPF(cpf string) string {
	n := StripNonDigits(cpf)
	if len(n) != 11 {
		return cpf
	}
	return n[0:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:11]
}

// FormatCNPJ formats a 14-digit string as XX.XXX.XXX/XXXX-XX. Input that
// does not contain exactly 14 digits is returned unchanged.
func FormatCNPJ(cnpj string) string {
	n := StripNonDigits(cnpj)
	if len(n) != 14 {
		return cnpj
	}
	return n[0:2] + "." + n[2:5] + "." + n[5:8] + "/" + n[8:12] + "-" + n[12:14]
}

// FormatPhone formats a 10 or 11 digit Brazilian phone number as
// (XX) XXXX-XXXX or (XX) XXXXX-XXXX. Anything else is returned unchanged.
func FormatPhone(phone string) string {
	n := StripNonDigits(phone)
	switch len(n) {
	case 10:
		return "(" + n[0:2] + ") " + n[2:6] + "-" + n[6:10]
	case 11:
		return "(" + n[0:2] + ") " + n[2:7] + "-" + n[7:11]
	}
	return phone
}

// checkDigit maps a weighted sum to its check digit: remainder below 2
// yields 0, otherwise 11 minus the remainder.
func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func toDigits(s string) []int {
	digits := make([]int, 0, len(s))
	for _, c := range s {
		digits = append(digits, int(c-'0'))
	}
	return digits
}

func allSame(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// ComputeCPFCheckDigits returns the two check digits for the first 9 CPF
// digits. It exists so callers (and tests) can generate valid identifiers.
func ComputeCPFCheckDigits(base string) (int, int, bool) {
	if len(base) != 9 || strings.ContainsFunc(base, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, 0, false
	}
	digits := toDigits(base)

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	first := checkDigit(sum)

	digits = append(digits, first)
	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	return first, checkDigit(sum), true
}

// ComputeCNPJCheckDigits returns the two check digits for the first 12 CNPJ
// digits.
func ComputeCNPJCheckDigits(base string) (int, int, bool) {
	if len(base) != 12 || strings.ContainsFunc(base, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, 0, false
	}
	digits := toDigits(base)

	sum := 0
	weight := 5
	for i := 0; i < 12; i++ {
		sum += digits[i] * weight
		if weight == 2 {
			weight = 9
		} else {
			weight--
		}
	}
	first := checkDigit(sum)

	digits = append(digits, first)
	sum = 0
	weight = 6
	for i := 0; i < 13; i++ {
		sum += digits[i] * weight
		if weight == 2 {
			weight = 9
		} else {
			weight--
		}
	}
	return first, checkDigit(sum), true
}
