// Package validation holds the pure validating transforms applied to
// Brazilian documents, addresses and phone numbers before anything reaches
// the stores or the payment gateway. Every function is side-effect free.
package validation

import (
	"strings"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// digitsOnly strips everything but ASCII digits
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSame reports whether every byte of s equals the first. Sequences like
// "00000000000" pass the CPF check-digit arithmetic but are not issued.
func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a mod-11 check digit over digits with the given
// weights
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte(11-rest) + '0'
}

// CPF validates an individual taxpayer number and returns it as 11 bare
// digits. Formatting characters ("123.456.789-09") are accepted.
func CPF(in string) (string, error) {
	cpf := digitsOnly(in)
	if len(cpf) != 11 || allSame(cpf) {
		return "", domain.ErrInvalidInput
	}

	d1 := checkDigit(cpf[:9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
	d2 := checkDigit(cpf[:10], []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
	if cpf[9] != d1 || cpf[10] != d2 {
		return "", domain.ErrInvalidInput
	}
	return cpf, nil
}

// CNPJ validates a company taxpayer number and returns it as 14 bare digits
func CNPJ(in string) (string, error) {
	cnpj := digitsOnly(in)
	if len(cnpj) != 14 || allSame(cnpj) {
		return "", domain.ErrInvalidInput
	}

	d1 := checkDigit(cnpj[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	d2 := checkDigit(cnpj[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	if cnpj[12] != d1 || cnpj[13] != d2 {
		return "", domain.ErrInvalidInput
	}
	return cnpj, nil
}
