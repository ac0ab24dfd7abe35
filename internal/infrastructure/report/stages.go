// Package report implementa las seis etapas del pipeline de despacho. Cada etapa lee
// la planilla o el catálogo de la fecha y sobrescribe sus artefactos en <output>/<date>/.
package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/domain/catalog"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/catalogstore"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/pdf"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/planning"
	"github.com/jhoicas/despacho-scan/pkg/fsutil"
)

// Nombres de artefactos dentro del directorio de la fecha.
const (
	CountersDir  = "counters"
	LoadingFile  = "loading.xml"
	ClientsDir   = "clients"
	CardsDir     = "cards"
	CleaningFile = "cleaning.pdf"
)

// Deps dependencias compartidas por las etapas.
type Deps struct {
	Parser  *planning.Parser
	Catalog *catalogstore.FileStore
	PDF     *pdf.Generator
	Log     zerolog.Logger
}

// DefaultStages las seis etapas en orden de ejecución.
func DefaultStages(d Deps) []pipeline.Stage {
	return []pipeline.Stage{
		&BaseReportsStage{deps: d},
		&CountersStage{deps: d},
		&LoadingTemplateStage{deps: d},
		&ClientTemplatesStage{deps: d},
		&ShippingCardsStage{deps: d},
		&CleaningTemplateStage{deps: d},
	}
}

// ── 1. Reportes base ──────────────────────────────────────────────────────────

// BaseReportsStage parsea las planillas de entrada y escribe data.json.
type BaseReportsStage struct{ deps Deps }

func (s *BaseReportsStage) Label() string { return pipeline.StageBaseReports }

func (s *BaseReportsStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	rows, err := s.deps.Parser.ParseDir(ctx, b.InputDir)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	if err := s.deps.Catalog.Save(ctx, b.Date, rows); err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	cat := catalog.Build(b.Date, rows)
	return pipeline.Artifact{
		Paths:  []string{s.deps.Catalog.Path(b.Date)},
		Output: fmt.Sprintf("%d filas leídas, %d clientes para %s", len(rows), len(cat.Clients()), b.Date),
	}, nil
}

// ── 2. Contadores por cliente ─────────────────────────────────────────────────

// CountersStage escribe counters/<cliente>.json con lo planificado por contenedor.
type CountersStage struct{ deps Deps }

type counterFile struct {
	Date       string         `json:"date"`
	Client     string         `json:"client"`
	Containers []counterEntry `json:"containers"`
	Total      int64          `json:"total"`
}

type counterEntry struct {
	Container string `json:"container"`
	Planned   int64  `json:"planned"`
}

func (s *CountersStage) Label() string { return pipeline.StageClientCounters }

func (s *CountersStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	sheets, err := loadSheets(ctx, s.deps.Catalog, b.Date)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	dir := filepath.Join(b.OutputDir, CountersDir)
	if err := fsutil.ResetDir(dir); err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	names := sheetSlugs(sheets)
	art := pipeline.Artifact{}
	for _, sh := range sheets {
		cf := counterFile{Date: b.Date, Client: sh.Client, Containers: []counterEntry{}, Total: sh.Total()}
		for _, l := range sh.Lines {
			cf.Containers = append(cf.Containers, counterEntry{Container: l.Container, Planned: l.Planned})
		}
		path := filepath.Join(dir, names[sh.Client]+".json")
		if err := fsutil.WriteJSONAtomic(path, cf); err != nil {
			return art, err
		}
		art.Paths = append(art.Paths, path)
	}
	art.Output = fmt.Sprintf("%d contadores generados", len(art.Paths))
	return art, nil
}

// ── 3. Plantilla de carga ─────────────────────────────────────────────────────

// LoadingTemplateStage genera loading.xml (SpreadsheetML) con una fila por contenedor.
type LoadingTemplateStage struct{ deps Deps }

func (s *LoadingTemplateStage) Label() string { return pipeline.StageLoadingTemplate }

func (s *LoadingTemplateStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	sheets, err := loadSheets(ctx, s.deps.Catalog, b.Date)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	data, err := LoadingWorkbook(b.Date, sheets)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	path := filepath.Join(b.OutputDir, LoadingFile)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	return pipeline.Artifact{Paths: []string{path}, Output: "plantilla de carga generada"}, nil
}

// LoadingWorkbook arma el libro SpreadsheetML 2003 que abre Excel/LibreOffice.
func LoadingWorkbook(date string, sheets []pdf.ClientSheet) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	wb := doc.CreateElement("Workbook")
	wb.CreateAttr("xmlns", "urn:schemas-microsoft-com:office:spreadsheet")
	wb.CreateAttr("xmlns:ss", "urn:schemas-microsoft-com:office:spreadsheet")

	ws := wb.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", "Carga "+date)
	table := ws.CreateElement("Table")

	addRow(table, cell{"String", "Fecha"}, cell{"String", "Cliente"}, cell{"String", "Contenedor"},
		cell{"String", "Planificado"}, cell{"String", "Cargado"})
	var total int64
	for _, sh := range sheets {
		for _, l := range sh.Lines {
			addRow(table, cell{"String", date}, cell{"String", sh.Client}, cell{"String", l.Container},
				cell{"Number", fmt.Sprint(l.Planned)}, cell{"String", ""})
			total += l.Planned
		}
	}
	addRow(table, cell{"String", ""}, cell{"String", "TOTAL"}, cell{"String", ""},
		cell{"Number", fmt.Sprint(total)}, cell{"String", ""})

	doc.Indent(2)
	return doc.WriteToBytes()
}

type cell struct {
	kind  string
	value string
}

func addRow(table *etree.Element, cells ...cell) {
	r := table.CreateElement("Row")
	for _, c := range cells {
		d := r.CreateElement("Cell").CreateElement("Data")
		d.CreateAttr("ss:Type", c.kind)
		d.SetText(c.value)
	}
}

// ── 4. Plantillas por cliente ─────────────────────────────────────────────────

// ClientTemplatesStage genera clients/<cliente>.pdf.
type ClientTemplatesStage struct{ deps Deps }

func (s *ClientTemplatesStage) Label() string { return pipeline.StageClientTemplates }

func (s *ClientTemplatesStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	return perClientPDF(ctx, s.deps, b, ClientsDir, s.deps.PDF.ClientTemplate)
}

// ── 5. Tarjetas de envío ──────────────────────────────────────────────────────

// ShippingCardsStage genera cards/<cliente>.pdf con un QR por contenedor.
type ShippingCardsStage struct{ deps Deps }

func (s *ShippingCardsStage) Label() string { return pipeline.StageShippingCards }

func (s *ShippingCardsStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	return perClientPDF(ctx, s.deps, b, CardsDir, s.deps.PDF.ShippingCards)
}

// ── 6. Plantilla de limpieza ──────────────────────────────────────────────────

// CleaningTemplateStage genera cleaning.pdf con todos los contenedores del día.
type CleaningTemplateStage struct{ deps Deps }

func (s *CleaningTemplateStage) Label() string { return pipeline.StageCleaningTemplate }

func (s *CleaningTemplateStage) Run(ctx context.Context, b pipeline.Batch) (pipeline.Artifact, error) {
	sheets, err := loadSheets(ctx, s.deps.Catalog, b.Date)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	data, err := s.deps.PDF.CleaningChecklist(b.Date, sheets)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	path := filepath.Join(b.OutputDir, CleaningFile)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	return pipeline.Artifact{Paths: []string{path}, Output: "checklist de limpieza generado"}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// loadSheets arma una hoja por cliente del catálogo ya generado por la etapa 1.
func loadSheets(ctx context.Context, store *catalogstore.FileStore, date string) ([]pdf.ClientSheet, error) {
	rows, err := store.Rows(ctx, date)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, fmt.Errorf("no existe %s para %s: falta la etapa %q", catalogstore.FileName, date, pipeline.StageBaseReports)
	}
	cat := catalog.Build(date, rows)
	sheets := make([]pdf.ClientSheet, 0, len(cat.Clients()))
	for _, client := range cat.Clients() {
		sh := pdf.ClientSheet{Date: date, Client: client}
		for _, t := range cat.ClientTargets(client) {
			sh.Lines = append(sh.Lines, pdf.ContainerLine{Container: t.Container, Planned: t.PlannedQuantity})
		}
		sheets = append(sheets, sh)
	}
	return sheets, nil
}

func sheetSlugs(sheets []pdf.ClientSheet) map[string]string {
	clients := make([]string, len(sheets))
	for i, s := range sheets {
		clients[i] = s.Client
	}
	return uniqueSlugs(clients)
}

func perClientPDF(ctx context.Context, d Deps, b pipeline.Batch, sub string, render func(pdf.ClientSheet) ([]byte, error)) (pipeline.Artifact, error) {
	sheets, err := loadSheets(ctx, d.Catalog, b.Date)
	if err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	dir := filepath.Join(b.OutputDir, sub)
	if err := fsutil.ResetDir(dir); err != nil {
		return pipeline.Artifact{Output: err.Error()}, err
	}
	names := sheetSlugs(sheets)
	art := pipeline.Artifact{}
	for _, sh := range sheets {
		if err := ctx.Err(); err != nil {
			return art, err
		}
		data, err := render(sh)
		if err != nil {
			art.Output = fmt.Sprintf("cliente %s: %v", sh.Client, err)
			return art, err
		}
		path := filepath.Join(dir, names[sh.Client]+".pdf")
		if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
			return art, err
		}
		art.Paths = append(art.Paths, path)
	}
	art.Output = fmt.Sprintf("%d documentos en %s", len(art.Paths), sub)
	d.Log.Debug().Str("date", b.Date).Str("dir", sub).Int("docs", len(art.Paths)).Msg("pdfs generados")
	return art, nil
}
