package inventory

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewLotCode genera un código de lote "L<unix millis>-<6 hex>".
// El sufijo aleatorio evita choques entre lotes creados en el mismo milisegundo.
func NewLotCode(now time.Time) string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// sin entropía usamos los nanosegundos
		return fmt.Sprintf("L%d-%06x", now.UnixMilli(), now.Nanosecond()&0xffffff)
	}
	return fmt.Sprintf("L%d-%s", now.UnixMilli(), hex.EncodeToString(b))
}
