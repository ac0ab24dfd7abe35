// Package catalog construye la vista de solo lectura de los despachos planificados
// de una fecha a partir de las filas del artefacto data.json.
package catalog

import (
	"strings"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// Catalog objetivos planificados de una fecha. El valor cero es un catálogo vacío válido.
type Catalog struct {
	Date       string
	targets    map[entity.TargetKey]int64
	clients    []string
	containers map[string][]string
}

// Build filtra las filas de la fecha, suma filas repetidas de un mismo
// (cliente, contenedor) y conserva los clientes en orden de primera aparición.
func Build(date string, rows []entity.CatalogRow) Catalog {
	c := Catalog{
		Date:       date,
		targets:    make(map[entity.TargetKey]int64),
		containers: make(map[string][]string),
	}
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.ShipDate != date {
			continue
		}
		client := strings.TrimSpace(r.Client)
		if client == "" {
			continue
		}
		if _, ok := seen[client]; !ok {
			seen[client] = struct{}{}
			c.clients = append(c.clients, client)
		}
		container := strings.TrimSpace(r.Container)
		if container == "" {
			continue
		}
		key := entity.TargetKey{Client: client, Container: container}
		if _, ok := c.targets[key]; !ok {
			c.containers[client] = append(c.containers[client], container)
		}
		c.targets[key] += r.PlannedQuantity
	}
	return c
}

// Target devuelve la cantidad planificada para (cliente, contenedor).
func (c Catalog) Target(client, container string) (int64, bool) {
	if c.targets == nil {
		return 0, false
	}
	q, ok := c.targets[entity.TargetKey{Client: client, Container: container}]
	return q, ok
}

// Clients clientes distintos en orden de primera aparición. Nunca nil.
func (c Catalog) Clients() []string {
	out := make([]string, len(c.clients))
	copy(out, c.clients)
	return out
}

// ClientTargets objetivos de un cliente en orden de aparición en las filas.
// Filas repetidas de un mismo contenedor ya vienen sumadas por Build.
func (c Catalog) ClientTargets(client string) []entity.ShipmentTarget {
	list := c.containers[client]
	out := make([]entity.ShipmentTarget, 0, len(list))
	for _, container := range list {
		out = append(out, entity.ShipmentTarget{
			Date:            c.Date,
			Client:          client,
			Container:       container,
			PlannedQuantity: c.targets[entity.TargetKey{Client: client, Container: container}],
		})
	}
	return out
}
