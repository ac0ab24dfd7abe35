package http

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/application/upload"
	"github.com/jhoicas/despacho-scan/internal/domain"
)

// UploadHandler recibe las planillas de planificación y espera al pipeline.
type UploadHandler struct {
	uc *upload.UseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *upload.UseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir planillas y generar los reportes del día
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        date   query     string  true  "Fecha de despacho (YYYY-MM-DD)"
// @Param        files  formData  file    true  "Planillas CSV (máximo 2)"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.UploadResponse
// @Failure      500  {object}  dto.UploadResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Success: false, Message: "se esperaba multipart/form-data"})
	}
	headers := form.File["files"]

	files := make([]upload.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Success: false, Message: "no se pudo leer " + fh.Filename})
		}
		opened = append(opened, f)
		files = append(files, upload.UploadFile{Name: fh.Filename, Content: f})
	}

	resp, err := h.uc.Process(c.Context(), c.Query("date"), files)
	switch {
	case err == nil:
		return c.JSON(resp)
	case resp != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Success: false, Message: err.Error()})
	default:
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.UploadResponse{Success: false, Message: "no se pudieron preparar las planillas"})
	}
}
