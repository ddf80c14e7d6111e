package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List handles GET /payments. Employees only see payments made to them;
// clients see none.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  paymentsResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentsResponse{Payments: list})
}

// Get handles GET /payments/:id.
//
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id"
// @Success      200  {object}  paymentResponse
// @Failure      403  {object}  map[string]string
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentResponse{Payment: p})
}

// Create handles POST /payments (admin only).
//
// @Summary      Record a payment to an employee
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment"
// @Success      201   {object}  paymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	p, err := h.service.Create(c.Request().Context(), caller, ports.CreatePaymentInput{
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		Amount:     req.Amount,
		Currency:   domain.Currency(req.Currency),
		Date:       date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, paymentResponse{Payment: p})
}

// Update handles PUT /payments/:id (admin only).
//
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payment id"
// @Param        body  body      updatePaymentRequest  true  "Fields to change"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req updatePaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return err
	}
	p, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UpdatePaymentInput{
		Amount:   req.Amount,
		Currency: asEnum[domain.Currency](req.Currency),
		Status:   asEnum[domain.PaymentStatus](req.Status),
		Date:     date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentResponse{Payment: p})
}

// Delete handles DELETE /payments/:id (admin only).
//
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return message(c, "payment deleted")
}

type RevenueHandler struct {
	service ports.RevenueService
}

func NewRevenueHandler(service ports.RevenueService) *RevenueHandler {
	return &RevenueHandler{service: service}
}

// List handles GET /revenues (admin only).
//
// @Summary      List revenues
// @Tags         revenues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenuesResponse
// @Failure      403  {object}  map[string]string
// @Router       /revenues [get]
func (h *RevenueHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenuesResponse{Revenues: list})
}

// Get handles GET /revenues/:id (admin only).
//
// @Summary      Get a revenue entry
// @Tags         revenues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Revenue id"
// @Success      200  {object}  revenueResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /revenues/{id} [get]
func (h *RevenueHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{Revenue: r})
}

// Create handles POST /revenues (admin only).
//
// @Summary      Record revenue from a client
// @Tags         revenues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRevenueRequest  true  "Revenue"
// @Success      201   {object}  revenueResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /revenues [post]
func (h *RevenueHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createRevenueRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	received, err := parseDate("dateReceived", req.DateReceived)
	if err != nil {
		return err
	}
	r, err := h.service.Create(c.Request().Context(), caller, ports.CreateRevenueInput{
		ClientID:     req.ClientID,
		ProjectID:    req.ProjectID,
		Amount:       req.Amount,
		Currency:     domain.Currency(req.Currency),
		DateReceived: received,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, revenueResponse{Revenue: r})
}

// Update handles PUT /revenues/:id (admin only).
//
// @Summary      Update a revenue entry
// @Tags         revenues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Revenue id"
// @Param        body  body      updateRevenueRequest  true  "Fields to change"
// @Success      200   {object}  revenueResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /revenues/{id} [put]
func (h *RevenueHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req updateRevenueRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	received, err := optionalDate("dateReceived", req.DateReceived)
	if err != nil {
		return err
	}
	r, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UpdateRevenueInput{
		Amount:       req.Amount,
		Currency:     asEnum[domain.Currency](req.Currency),
		Status:       asEnum[domain.RevenueStatus](req.Status),
		DateReceived: received,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{Revenue: r})
}

// Delete handles DELETE /revenues/:id (admin only).
//
// @Summary      Delete a revenue entry
// @Tags         revenues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Revenue id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /revenues/{id} [delete]
func (h *RevenueHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return message(c, "revenue deleted")
}
