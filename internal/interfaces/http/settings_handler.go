package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/usecase"
)

// SettingsHandler maneja la tasa de cambio (solo admin para escritura).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetExchangeRate godoc
// @Summary      Tasa de cambio vigente (Bs por USD)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExchangeRateResponse
// @Router       /api/settings/exchange-rate [get]
func (h *SettingsHandler) GetExchangeRate(c *fiber.Ctx) error {
	rate, err := h.uc.GetExchangeRate()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ExchangeRateResponse{Rate: rate})
}

// UpdateExchangeRate godoc
// @Summary      Actualizar tasa de cambio y recalcular precios Bs
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateExchangeRateRequest  true  "Nueva tasa"
// @Success      200   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/exchange-rate [put]
func (h *SettingsHandler) UpdateExchangeRate(c *fiber.Ctx) error {
	var in dto.UpdateExchangeRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateExchangeRate(in.Rate); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ExchangeRateResponse{Rate: in.Rate})
}
