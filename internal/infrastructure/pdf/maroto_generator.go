// Package pdf genera los documentos imprimibles del despacho con Maroto v2:
// hoja de cliente, tarjetas de envío con QR y checklist de limpieza de contenedores.
//
// Layout común (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del documento │ fecha de despacho           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUERPO: tabla / tarjetas según el documento                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: totales + leyenda                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ContainerLine cantidad planificada de un contenedor.
type ContainerLine struct {
	Container string
	Planned   int64
}

// ClientSheet datos de un cliente para una fecha de despacho.
type ClientSheet struct {
	Date   string
	Client string
	Lines  []ContainerLine
}

// Total suma de cantidades planificadas.
func (s ClientSheet) Total() int64 {
	var t int64
	for _, l := range s.Lines {
		t += l.Planned
	}
	return t
}

// CardPayload contenido del QR de una tarjeta de envío.
func CardPayload(date, client, container string) string {
	return strings.Join([]string{date, client, container}, "|")
}

// ── Generator ─────────────────────────────────────────────────────────────────

// Generator arma los PDF en memoria; no tiene estado.
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

// ClientTemplate hoja de carga de un cliente: una fila por contenedor con espacio
// para anotar lo cargado.
func (g *Generator) ClientTemplate(sheet ClientSheet) ([]byte, error) {
	m := maroto.New(newConfig("Hoja de cliente " + sheet.Client).Build())

	m.AddRows(headerRow("HOJA DE CARGA", sheet.Client, sheet.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow("Contenedor", "Planificado", "Cargado", "Observaciones"))
	for _, l := range sheet.Lines {
		m.AddRows(row.New(8).Add(
			col.New(4).Add(text.New(l.Container, props.Text{Size: 9, Top: 1.5, Left: 1})),
			col.New(2).Add(text.New(formatQty(l.Planned), props.Text{Size: 9, Top: 1.5, Align: align.Right, Right: 2})),
			col.New(2).Add(text.New("______", props.Text{Size: 9, Top: 1.5, Align: align.Center, Color: colorGray})),
			col.New(4).Add(text.New("", props.Text{Size: 9})),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(len(sheet.Lines), sheet.Total()))
	m.AddRows(signatureRow())

	return generate(m)
}

// ShippingCards una tarjeta por contenedor con QR fecha|cliente|contenedor para el lector.
func (g *Generator) ShippingCards(sheet ClientSheet) ([]byte, error) {
	m := maroto.New(newConfig("Tarjetas de envío " + sheet.Client).Build())

	m.AddRows(headerRow("TARJETAS DE ENVÍO", sheet.Client, sheet.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, l := range sheet.Lines {
		m.AddRows(cardRow(sheet.Date, sheet.Client, l))
		m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	if len(sheet.Lines) == 0 {
		m.AddRows(emptyRow("El cliente no tiene contenedores planificados para la fecha."))
	}
	return generate(m)
}

// CleaningChecklist lista única de contenedores del día para el control de limpieza.
func (g *Generator) CleaningChecklist(date string, sheets []ClientSheet) ([]byte, error) {
	m := maroto.New(newConfig("Limpieza de contenedores " + date).Build())

	m.AddRows(headerRow("CONTROL DE LIMPIEZA", "Todos los clientes", date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow("Cliente", "Contenedor", "Limpio", "Responsable"))
	count := 0
	for _, s := range sheets {
		for _, l := range s.Lines {
			count++
			m.AddRows(row.New(7).Add(
				col.New(4).Add(text.New(s.Client, props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(l.Container, props.Text{Size: 8, Top: 1})),
				col.New(2).Add(text.New("[   ]", props.Text{Size: 9, Top: 1, Align: align.Center})),
				col.New(4).Add(text.New("____________________", props.Text{Size: 8, Top: 1, Color: colorGray})),
			))
		}
	}
	if count == 0 {
		m.AddRows(emptyRow("Sin contenedores planificados para la fecha."))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Contenedores a revisar: %d", count), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
		}),
	)))
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newConfig(title string) config.Builder {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + cliente (izq) y fecha de despacho (der).
func headerRow(title, subject, date string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(subject, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Fecha de despacho", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(date, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow(labels ...string) core.Row {
	sizes := []int{4, 2, 2, 4}
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i%len(sizes)]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func totalRow(containers int, total int64) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Contenedores: %d", containers), props.Text{
			Size: 9, Top: 2, Left: 1, Color: colorGray,
		})),
		col.New(6).Add(text.New("TOTAL PLANIFICADO: "+formatQty(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Right: 2, Color: colorPrimary,
		})),
	)
}

func signatureRow() core.Row {
	return row.New(24).Add(
		col.New(6).Add(text.New("Preparó: ____________________", props.Text{Size: 9, Top: 14, Left: 1})),
		col.New(6).Add(text.New("Verificó: ____________________", props.Text{Size: 9, Top: 14, Align: align.Right})),
	)
}

func cardRow(date, client string, l ContainerLine) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(CardPayload(date, client, l.Container), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New(l.Container, props.Text{
				Style: fontstyle.Bold, Size: 18, Top: 4, Left: 3,
			}),
			text.New(client, props.Text{Size: 11, Top: 16, Left: 3}),
			text.New("Cantidad planificada: "+formatQty(l.Planned), props.Text{
				Size: 10, Top: 25, Left: 3, Color: colorPrimary,
			}),
			text.New("Despacho "+date, props.Text{Size: 8, Top: 34, Left: 3, Color: colorGray}),
		),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(msg, props.Text{
		Size: 9, Top: 3, Align: align.Center, Color: colorGray,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty inserta puntos de miles. Ej: 25000 → "25.000"
func formatQty(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
