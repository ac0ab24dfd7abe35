package dto

import "time"

// ScanRequest body para POST /api/scan. Qty negativo = corrección o deshacer; 0 solo consulta.
type ScanRequest struct {
	Date      string `json:"date"`
	Client    string `json:"client"`
	Container string `json:"container"`
	Qty       int64  `json:"qty"`
}

// ScanResponse estado del contenedor tras aplicar el delta.
// Total y Remaining van como null cuando el contenedor no figura en el catálogo.
type ScanResponse struct {
	Message   string `json:"message"`
	Total     *int64 `json:"total"`
	Scanned   int64  `json:"scanned"`
	Remaining *int64 `json:"remaining"`
}

// FinishRequest body para POST /api/finish. Date vacío = fecha actual del servidor.
type FinishRequest struct {
	Client string `json:"client"`
	Date   string `json:"date,omitempty"`
}

// ContainerStatusDTO una fila del resumen de un cliente.
type ContainerStatusDTO struct {
	Container      string     `json:"container"`
	Scanned        int64      `json:"scanned"`
	Total          *int64     `json:"total"`
	Remaining      *int64     `json:"remaining"`
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`
}

// ClientLedgerResponse resumen de un cliente para reanudar el escaneo.
type ClientLedgerResponse struct {
	Date       string               `json:"date"`
	Client     string               `json:"client"`
	FinishedAt *time.Time           `json:"finished_at"`
	Containers []ContainerStatusDTO `json:"containers"`
}

// UndoneScanDTO escaneo revertido por POST /api/undo.
type UndoneScanDTO struct {
	Date      string `json:"date"`
	Client    string `json:"client"`
	Container string `json:"container"`
	Qty       int64  `json:"qty"`
}

// UndoResponse estado del contenedor tras revertir el último escaneo de la estación.
type UndoResponse struct {
	ScanResponse
	Undone UndoneScanDTO `json:"undone"`
}
