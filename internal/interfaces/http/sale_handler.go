package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/sales"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
)

// SaleHandler maneja el checkout y las consultas de ventas (protegido).
type SaleHandler struct {
	createUC *sales.CreateSaleUseCase
	queryUC  *sales.SalesQueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.SalesQueryUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de todas las líneas en una sola transacción;
// @Description  si alguna línea no tiene stock, la venta completa se aborta.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validateStruct(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	sale, err := h.createUC.CreateSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas con resumen del día y del mes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  map[string]interface{}
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.queryUC.List(page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	summary, err := h.queryUC.Summary(time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(fiber.Map{
		"sales": out,
		"summary": dto.SalesSummaryResponse{
			TodayTotalUSD: summary.TodayTotalUSD,
			MonthTotalUSD: summary.MonthTotalUSD,
			MonthCount:    summary.MonthCount,
		},
	})
}

// GetByID godoc
// @Summary      Detalle de una venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.queryUC.GetByID(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceBs:     it.PriceBs,
			PriceUSD:    it.PriceUSD,
		})
	}
	return dto.SaleResponse{
		ID:       s.ID,
		Date:     s.Date,
		TotalBs:  s.TotalBs,
		TotalUSD: s.TotalUSD,
		UserID:   s.UserID,
		Items:    items,
	}
}
