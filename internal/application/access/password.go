package access

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tempPasswordLength   = 8
	tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// PasswordGenerator produce contraseñas temporales.
type PasswordGenerator func() (string, error)

// TemporaryPassword genera una contraseña alfanumérica de 8 caracteres con crypto/rand.
// El alfabeto omite caracteres ambiguos (0/O, 1/l/I).
func TemporaryPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	out := make([]byte, tempPasswordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar contraseña temporal: %w", err)
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
