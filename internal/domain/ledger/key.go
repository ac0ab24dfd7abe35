package ledger

import (
	"strings"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// DateLayout formato de fecha de despacho (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ValidateDate verifica que la fecha tenga formato YYYY-MM-DD y sea una fecha real.
func ValidateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return domain.NewValidationError("date", "es requerida")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return domain.NewValidationError("date", "formato esperado YYYY-MM-DD")
	}
	return nil
}

// NewKey normaliza y valida una clave del ledger. Los espacios alrededor del
// contenedor vienen del lector de códigos y no forman parte del identificador.
func NewKey(date, client, container string) (entity.LedgerKey, error) {
	key := entity.LedgerKey{
		Date:      strings.TrimSpace(date),
		Client:    strings.TrimSpace(client),
		Container: strings.TrimSpace(container),
	}
	if err := ValidateDate(key.Date); err != nil {
		return entity.LedgerKey{}, err
	}
	if key.Client == "" {
		return entity.LedgerKey{}, domain.NewValidationError("client", "es requerido")
	}
	if key.Container == "" {
		return entity.LedgerKey{}, domain.NewValidationError("container", "es requerido")
	}
	return key, nil
}
