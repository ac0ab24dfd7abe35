package ledger

// Totals estado derivado de una entrada contra su objetivo planificado.
// Total y Remaining son nil cuando el contenedor no figura en el catálogo de la fecha.
type Totals struct {
	Scanned   int64
	Total     *int64
	Remaining *int64
}

// ComputeTotals calcula remaining = planned - scanned. Remaining puede ser negativo
// (sobre-escaneo); no es un error.
func ComputeTotals(scanned int64, planned int64, found bool) Totals {
	t := Totals{Scanned: scanned}
	if !found {
		return t
	}
	total := planned
	remaining := planned - scanned
	t.Total = &total
	t.Remaining = &remaining
	return t
}
