package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/application/scan"
)

// HeaderStationID identifica la estación de escaneo para el undo del servidor.
const HeaderStationID = "X-Station-ID"

// ScanHandler maneja las peticiones de las estaciones de escaneo.
type ScanHandler struct {
	uc   *scan.ScanUseCase
	undo *scan.UndoRegistry
}

// NewScanHandler construye el handler. undo puede ser nil: /api/undo responde 409.
func NewScanHandler(uc *scan.ScanUseCase, undo *scan.UndoRegistry) *ScanHandler {
	if undo == nil {
		undo = scan.NewUndoRegistry()
	}
	return &ScanHandler{uc: uc, undo: undo}
}

// Orders godoc
// @Summary      Clientes planificados de una fecha
// @Tags         scan
// @Produce      json
// @Param        date  path  string  true  "Fecha de despacho (YYYY-MM-DD)"
// @Success      200   {array}   string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/{date} [get]
func (h *ScanHandler) Orders(c *fiber.Ctx) error {
	clients, err := h.uc.ListClients(c.Context(), c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(clients)
}

// Scan godoc
// @Summary      Registrar cajas escaneadas (qty negativo corrige)
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        X-Station-ID  header  string           false  "Estación que escanea (habilita /api/undo)"
// @Param        body          body    dto.ScanRequest  true   "Escaneo"
// @Success      200  {object}  dto.ScanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "❌ Error: cuerpo inválido"})
	}
	out, res, err := h.uc.ApplyFromRequest(c.Context(), in)
	if err != nil {
		status, code := errorStatus(err)
		msg := err.Error()
		if status == fiber.StatusInternalServerError {
			msg = "error interno"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "❌ Error: " + msg})
	}
	if station := strings.TrimSpace(c.Get(HeaderStationID)); station != "" && in.Qty != 0 {
		h.undo.Record(station, scan.PendingUndo{
			Date:      res.Key.Date,
			Client:    res.Key.Client,
			Container: res.Key.Container,
			Quantity:  in.Qty,
		})
	}
	return c.JSON(out)
}

// Undo godoc
// @Summary      Deshacer el último escaneo de la estación
// @Tags         scan
// @Produce      json
// @Param        X-Station-ID  header  string  true  "Estación que escanea"
// @Success      200  {object}  dto.UndoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/undo [post]
func (h *ScanHandler) Undo(c *fiber.Ctx) error {
	station := strings.TrimSpace(c.Get(HeaderStationID))
	if station == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: HeaderStationID + " es requerido"})
	}
	res, undone, err := h.undo.Session(station).Undo(c.Context(), h.uc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UndoResponse{
		ScanResponse: dto.ScanResponse{
			Message:   fmt.Sprintf("↩ Deshecho %d en %s", undone.Quantity, undone.Container),
			Total:     res.Total,
			Scanned:   res.Scanned,
			Remaining: res.Remaining,
		},
		Undone: dto.UndoneScanDTO{
			Date:      undone.Date,
			Client:    undone.Client,
			Container: undone.Container,
			Qty:       undone.Quantity,
		},
	})
}

// Finish godoc
// @Summary      Marcar cliente como terminado
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinishRequest  true  "Cliente y fecha opcional"
// @Success      200   {object}  dto.AckResponse
// @Failure      400   {object}  dto.AckResponse
// @Router       /api/finish [post]
func (h *ScanHandler) Finish(c *fiber.Ctx) error {
	var in dto.FinishRequest
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Client) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.AckResponse{OK: false})
	}
	if _, err := h.uc.Finish(c.Context(), in.Client, in.Date); err != nil {
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.AckResponse{OK: false})
	}
	return c.JSON(dto.AckResponse{OK: true})
}

// Ledger godoc
// @Summary      Estado escaneado de un cliente
// @Tags         scan
// @Produce      json
// @Param        date    path  string  true  "Fecha de despacho (YYYY-MM-DD)"
// @Param        client  path  string  true  "Cliente (URL-encoded)"
// @Success      200  {object}  dto.ClientLedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/{date}/{client} [get]
func (h *ScanHandler) Ledger(c *fiber.Ctx) error {
	client, err := url.PathUnescape(c.Params("client"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client mal codificado"})
	}
	out, err := h.uc.ClientLedger(c.Context(), c.Params("date"), client)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
