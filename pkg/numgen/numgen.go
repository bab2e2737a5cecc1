// Package numgen genera números identificadores de N dígitos decimales
// (códigos de usuario y producto, número único de transacción).
//
// El generador NO garantiza unicidad: la unicidad la aporta el constraint
// UNIQUE en la base de datos, y el caller decide si reintenta al recibir
// una violación de unicidad (ver ledger.maxNumberAttempts).
package numgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Longitudes usadas por la aplicación.
const (
	UserCodeLength          = 8  // código visible de usuario
	ProductCodeLength       = 9  // código único de producto
	TransactionNumberLength = 12 // número único de transacción
)

var ten = big.NewInt(10)

// Generate devuelve una cadena de length dígitos decimales aleatorios.
// Puede empezar por cero; se trata como cadena, nunca como entero.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("numgen: longitud inválida %d", length)
	}
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("numgen: leer aleatorio: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
