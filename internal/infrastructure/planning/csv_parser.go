// Package planning lee las planillas de despacho exportadas del sistema de
// planificación (CSV, encabezados en polaco o español) y las normaliza a filas de catálogo.
package planning

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// ErrNoPlanningFiles el directorio de entrada no contiene planillas.
var ErrNoPlanningFiles = errors.New("planning: no se encontraron planillas .csv")

type column int

const (
	colDate column = iota
	colClient
	colContainer
	colQuantity
)

// headerAliases encabezados aceptados, ya normalizados (minúsculas, sin diacríticos).
var headerAliases = map[string]column{
	"data wysyłki":     colDate,
	"data wysylki":     colDate,
	"ship_date":        colDate,
	"ship date":        colDate,
	"fecha":            colDate,
	"fecha despacho":   colDate,
	"fecha_despacho":   colDate,
	"date":             colDate,
	"odbiorca":         colClient,
	"client":           colClient,
	"cliente":          colClient,
	"kontener":         colContainer,
	"pojemnik":         colContainer,
	"container":        colContainer,
	"contenedor":       colContainer,
	"ilosc":            colQuantity,
	"qty":              colQuantity,
	"quantity":         colQuantity,
	"planned_quantity": colQuantity,
	"cantidad":         colQuantity,
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006", "2006/01/02", "2006.01.02"}

// Parser decodifica planillas en la codificación configurada.
type Parser struct {
	enc encoding.Encoding // nil = UTF-8
}

// NewParser acepta utf-8, windows-1250, iso-8859-2, windows-1252 e iso-8859-1.
func NewParser(encodingName string) (*Parser, error) {
	switch strings.ToLower(strings.TrimSpace(encodingName)) {
	case "", "utf-8", "utf8":
		return &Parser{}, nil
	case "windows-1250", "cp1250":
		return &Parser{enc: charmap.Windows1250}, nil
	case "iso-8859-2", "iso8859-2", "latin2":
		return &Parser{enc: charmap.ISO8859_2}, nil
	case "windows-1252", "cp1252":
		return &Parser{enc: charmap.Windows1252}, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return &Parser{enc: charmap.ISO8859_1}, nil
	default:
		return nil, fmt.Errorf("planning: codificación no soportada %q", encodingName)
	}
}

// ParseDir lee todos los .csv de dir en orden alfabético y concatena sus filas.
func (p *Parser) ParseDir(ctx context.Context, dir string) ([]entity.CatalogRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("planning: leer %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, ErrNoPlanningFiles
	}
	sort.Strings(files)

	var all []entity.CatalogRow
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := p.parseFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

func (p *Parser) parseFile(path string) ([]entity.CatalogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("planning: abrir %s: %w", path, err)
	}
	defer f.Close()
	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("planning: %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// Parse lee una planilla. El separador (';' o ',') se detecta en el encabezado.
func (p *Parser) Parse(r io.Reader) ([]entity.CatalogRow, error) {
	if p.enc != nil {
		r = transform.NewReader(r, p.enc.NewDecoder())
	}
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(3); bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	first, err := br.Peek(br.Size())
	if err != nil && len(first) == 0 {
		return nil, fmt.Errorf("planilla vacía")
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(first)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var out []entity.CatalogRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		row, err := toRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func detectDelimiter(sample []byte) rune {
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	if bytes.Count(sample, []byte{';'}) > bytes.Count(sample, []byte{','}) {
		return ';'
	}
	return ','
}

func mapHeader(header []string) (map[column]int, error) {
	idx := make(map[column]int, 4)
	for i, h := range header {
		if c, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, dup := idx[c]; !dup {
				idx[c] = i
			}
		}
	}
	for c, name := range map[column]string{
		colDate: "fecha de despacho", colClient: "cliente",
		colContainer: "contenedor", colQuantity: "cantidad",
	} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %s en el encabezado %v", name, header)
		}
	}
	return idx, nil
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if out, _, err := transform.String(stripMarks, h); err == nil {
		h = out
	}
	return strings.Join(strings.Fields(h), " ")
}

func toRow(record []string, idx map[column]int) (entity.CatalogRow, error) {
	get := func(c column) string {
		i := idx[c]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(get(colDate))
	if err != nil {
		return entity.CatalogRow{}, err
	}
	qty, err := ParseQuantity(get(colQuantity))
	if err != nil {
		return entity.CatalogRow{}, err
	}
	return entity.CatalogRow{
		ShipDate:        date,
		Client:          get(colClient),
		Container:       get(colContainer),
		PlannedQuantity: qty,
	}, nil
}

func parseDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("fecha inválida %q", s)
}

// ParseQuantity acepta "12", "12.0", "12,0" y "1 200"; rechaza fracciones y negativos.
func ParseQuantity(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return 0, fmt.Errorf("cantidad vacía")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("cantidad inválida %q", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("cantidad fraccionaria %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("cantidad negativa %q", s)
	}
	return d.IntPart(), nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
