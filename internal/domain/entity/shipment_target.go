package entity

// CatalogRow fila del artefacto data.json generado por la etapa de reportes base.
// ShipDate puede diferir de la fecha del lote: la planilla semanal trae varias fechas.
type CatalogRow struct {
	ShipDate        string `json:"ship_date"`
	Client          string `json:"client"`
	Container       string `json:"container"`
	PlannedQuantity int64  `json:"planned_quantity"`
}

// TargetKey identifica un objetivo dentro del catálogo de una fecha.
type TargetKey struct {
	Client    string
	Container string
}

// ShipmentTarget cantidad planificada para (fecha, cliente, contenedor).
// Inmutable una vez generado el catálogo; regenerar la fecha lo reemplaza completo.
type ShipmentTarget struct {
	Date            string
	Client          string
	Container       string
	PlannedQuantity int64
}
