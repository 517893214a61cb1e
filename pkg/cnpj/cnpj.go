// Package cnpj valida y formatea el CNPJ (Cadastro Nacional da Pessoa Jurídica).
package cnpj

import (
	"fmt"
	"regexp"
	"unicode"
)

// maskPattern formato exigido en los formularios: 00.000.000/0000-00.
var maskPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

// pesos módulo 11 para el primer y segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// HasMask informa si s respeta exactamente la máscara 00.000.000/0000-00.
func HasMask(s string) bool {
	return maskPattern.MatchString(s)
}

// Validate comprueba longitud y dígitos verificadores. Acepta el CNPJ con o sin máscara.
func Validate(s string) error {
	digits := Digits(s)
	if len(digits) != 14 {
		return fmt.Errorf("cnpj: se esperaban 14 dígitos, se encontraron %d", len(digits))
	}
	if allEqual(digits) {
		return fmt.Errorf("cnpj: secuencia repetida %s", digits)
	}
	d1, d2 := ComputeCheckDigits(digits[:12])
	if digits[12] != d1 || digits[13] != d2 {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recibido %c%c", d1, d2, digits[12], digits[13])
	}
	return nil
}

// IsValid atajo booleano de Validate.
func IsValid(s string) bool { return Validate(s) == nil }

// ComputeCheckDigits calcula los dos dígitos verificadores para la base de 12 dígitos.
// base debe contener solo dígitos ASCII.
func ComputeCheckDigits(base string) (byte, byte) {
	var sum int
	for i := 0; i < 12 && i < len(base); i++ {
		sum += int(base[i]-'0') * firstWeights[i]
	}
	d1 := checkDigit(sum)

	sum = 0
	for i := 0; i < 12 && i < len(base); i++ {
		sum += int(base[i]-'0') * secondWeights[i]
	}
	sum += int(d1-'0') * secondWeights[12]
	return d1, checkDigit(sum)
}

// Format aplica la máscara a un CNPJ de 14 dígitos. Si no tiene 14 dígitos lo devuelve tal cual.
func Format(s string) string {
	d := Digits(s)
	if len(d) != 14 {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// Digits extrae solo los dígitos de s.
func Digits(s string) string {
	out := make([]byte, 0, 14)
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

func checkDigit(sum int) byte {
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
