package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/report"
	"github.com/jhoicas/pos-api/internal/domain"
)

// ReportHandler exporta reportes en PDF o XLSX (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar reporte
// @Description  Arma el reporte pedido y lo devuelve como descarga binaria.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type    query  string  true   "sales | inventory | customers"
// @Param        format  query  string  true   "pdf | xlsx"
// @Param        from    query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to      query  string  false  "Fecha final (2006-01-02)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	in := dto.ExportReportRequest{
		Type:   c.Query("type"),
		Format: c.Query("format"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if in.Type == "" || in.Format == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type y format son requeridos"})
	}
	res, err := h.uc.Export(c.UserContext(), companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type, format o rango de fechas inválido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, res.MIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, res.Filename))
	return c.Send(res.Content)
}
