package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/catalog"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/ledger"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

// Result estado de una clave del ledger después de aplicar un delta.
type Result struct {
	Key            entity.LedgerKey
	LastModifiedAt time.Time
	ledger.Totals
}

// ScanUseCase reconcilia cantidades escaneadas contra el catálogo planificado.
// La serialización por clave la garantiza el LedgerRepository (incremento atómico);
// claves distintas avanzan en paralelo.
type ScanUseCase struct {
	ledgerRepo     repository.LedgerRepository
	completionRepo repository.CompletionRepository
	catalog        CatalogReader
	now            func() time.Time
	log            zerolog.Logger
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(
	ledgerRepo repository.LedgerRepository,
	completionRepo repository.CompletionRepository,
	catalog CatalogReader,
	log zerolog.Logger,
) *ScanUseCase {
	return &ScanUseCase{
		ledgerRepo:     ledgerRepo,
		completionRepo: completionRepo,
		catalog:        catalog,
		now:            time.Now,
		log:            log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ScanUseCase) WithClock(now func() time.Time) *ScanUseCase {
	uc.now = now
	return uc
}

// ApplyDelta suma delta a la cantidad escaneada de (date, client, container), crea la
// entrada si no existe y devuelve scanned/total/remaining. Sin objetivo en el catálogo
// el escaneo se registra igual y total/remaining quedan nil. Delta cero solo consulta
// los totales: no crea la entrada ni toca last_modified_at.
func (uc *ScanUseCase) ApplyDelta(ctx context.Context, date, client, container string, delta int64) (*Result, error) {
	key, err := ledger.NewKey(date, client, container)
	if err != nil {
		return nil, err
	}

	// El catálogo se lee antes de escribir: un fallo aquí no debe dejar un escaneo
	// registrado con una respuesta de error.
	cat := uc.loadCatalog(ctx, key.Date)

	if delta == 0 {
		return uc.currentTotals(ctx, cat, key)
	}

	entry, err := uc.ledgerRepo.ApplyDelta(ctx, key, delta, uc.now())
	if err != nil {
		if errors.Is(err, domain.ErrNegativeScan) {
			return nil, err
		}
		uc.log.Error().Err(err).
			Str("date", key.Date).Str("client", key.Client).Str("container", key.Container).
			Int64("delta", delta).Msg("no se pudo persistir el escaneo")
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	planned, found := cat.Target(key.Client, key.Container)
	res := &Result{
		Key:            key,
		LastModifiedAt: entry.LastModifiedAt,
		Totals:         ledger.ComputeTotals(entry.ScannedQuantity, planned, found),
	}

	ev := uc.log.Info().
		Str("date", key.Date).Str("client", key.Client).Str("container", key.Container).
		Int64("delta", delta).Int64("scanned", res.Scanned)
	if found {
		ev = ev.Int64("remaining", *res.Remaining)
	} else {
		ev = ev.Bool("sin_objetivo", true)
	}
	ev.Msg("escaneo aplicado")
	return res, nil
}

func (uc *ScanUseCase) currentTotals(ctx context.Context, cat catalog.Catalog, key entity.LedgerKey) (*Result, error) {
	entry, err := uc.ledgerRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	planned, found := cat.Target(key.Client, key.Container)
	res := &Result{Key: key}
	var scanned int64
	if entry != nil {
		scanned = entry.ScannedQuantity
		res.LastModifiedAt = entry.LastModifiedAt
	}
	res.Totals = ledger.ComputeTotals(scanned, planned, found)
	return res, nil
}

// ApplyFromRequest adapta el body HTTP al caso de uso y arma el mensaje para la UI.
func (uc *ScanUseCase) ApplyFromRequest(ctx context.Context, in dto.ScanRequest) (*dto.ScanResponse, *Result, error) {
	res, err := uc.ApplyDelta(ctx, in.Date, in.Client, in.Container, in.Qty)
	if err != nil {
		return nil, nil, err
	}
	msg := fmt.Sprintf("✔ Agregado %d a %s", in.Qty, res.Key.Container)
	if in.Qty == 0 {
		msg = fmt.Sprintf("Sin cambios en %s", res.Key.Container)
	}
	return &dto.ScanResponse{
		Message:   msg,
		Total:     res.Total,
		Scanned:   res.Scanned,
		Remaining: res.Remaining,
	}, res, nil
}

// Finish marca el cliente como terminado para la fecha. Idempotente: repetirlo
// actualiza el timestamp. No modifica el ledger ni impide escaneos posteriores.
// date vacío usa la fecha actual.
func (uc *ScanUseCase) Finish(ctx context.Context, client, date string) (*entity.ClientCompletion, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, domain.NewValidationError("client", "es requerido")
	}
	now := uc.now()
	date = strings.TrimSpace(date)
	if date == "" {
		date = now.Format(ledger.DateLayout)
	}
	if err := ledger.ValidateDate(date); err != nil {
		return nil, err
	}
	if err := uc.completionRepo.MarkFinished(ctx, date, client, now); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	uc.log.Info().Str("date", date).Str("client", client).Msg("cliente finalizado")
	return &entity.ClientCompletion{Date: date, Client: client, FinishedAt: &now}, nil
}

// ListClients clientes distintos del catálogo de la fecha en orden de primera aparición.
// Sin catálogo devuelve una lista vacía.
func (uc *ScanUseCase) ListClients(ctx context.Context, date string) ([]string, error) {
	if err := ledger.ValidateDate(date); err != nil {
		return nil, err
	}
	return uc.loadCatalog(ctx, date).Clients(), nil
}

// ClientLedger combina los objetivos del catálogo con lo escaneado para un cliente:
// primero los contenedores planificados en orden, luego los escaneados sin objetivo.
func (uc *ScanUseCase) ClientLedger(ctx context.Context, date, client string) (*dto.ClientLedgerResponse, error) {
	if err := ledger.ValidateDate(date); err != nil {
		return nil, err
	}
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, domain.NewValidationError("client", "es requerido")
	}

	cat := uc.loadCatalog(ctx, date)
	entries, err := uc.ledgerRepo.ListByClient(ctx, date, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	completion, err := uc.completionRepo.Get(ctx, date, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	byContainer := make(map[string]*entity.LedgerEntry, len(entries))
	for _, e := range entries {
		byContainer[e.Container] = e
	}

	out := &dto.ClientLedgerResponse{Date: date, Client: client, Containers: []dto.ContainerStatusDTO{}}
	if completion != nil {
		out.FinishedAt = completion.FinishedAt
	}
	for _, target := range cat.ClientTargets(client) {
		var scanned int64
		var modified *time.Time
		if e, ok := byContainer[target.Container]; ok {
			scanned = e.ScannedQuantity
			t := e.LastModifiedAt
			modified = &t
			delete(byContainer, target.Container)
		}
		totals := ledger.ComputeTotals(scanned, target.PlannedQuantity, true)
		out.Containers = append(out.Containers, dto.ContainerStatusDTO{
			Container: target.Container, Scanned: scanned, Total: totals.Total,
			Remaining: totals.Remaining, LastModifiedAt: modified,
		})
	}
	for _, e := range entries {
		if _, pending := byContainer[e.Container]; !pending {
			continue
		}
		t := e.LastModifiedAt
		out.Containers = append(out.Containers, dto.ContainerStatusDTO{
			Container: e.Container, Scanned: e.ScannedQuantity, LastModifiedAt: &t,
		})
	}
	return out, nil
}

// loadCatalog trata un catálogo ilegible como "sin datos aún": el escaneo no se bloquea
// por un artefacto dañado, solo se reporta sin objetivo.
func (uc *ScanUseCase) loadCatalog(ctx context.Context, date string) catalog.Catalog {
	cat, err := uc.catalog.Load(ctx, date)
	if err != nil {
		uc.log.Warn().Err(err).Str("date", date).Msg("catálogo ilegible, se trata como vacío")
		return catalog.Catalog{Date: date}
	}
	return cat
}
