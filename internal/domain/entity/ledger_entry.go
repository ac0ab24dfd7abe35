package entity

import "time"

// LedgerKey clave compuesta del ledger de escaneo.
type LedgerKey struct {
	Date      string
	Client    string
	Container string
}

// String representación estable usada para locks e índices.
func (k LedgerKey) String() string {
	return k.Date + "\x1f" + k.Client + "\x1f" + k.Container
}

// LedgerEntry cantidad escaneada acumulada para una clave. Se crea en el primer
// escaneo y nunca se elimina (sirve para reanudar aunque el cliente esté finalizado).
type LedgerEntry struct {
	Date            string
	Client          string
	Container       string
	ScannedQuantity int64
	LastModifiedAt  time.Time
}

// Key devuelve la clave compuesta de la entrada.
func (e *LedgerEntry) Key() LedgerKey {
	return LedgerKey{Date: e.Date, Client: e.Client, Container: e.Container}
}
