package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Eursukkul/ticketing-service/internal/dto"
	"github.com/Eursukkul/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
)

const msgTicketNotFound = "Ticket not found"

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ticket", h.CreateTicket)
	e.GET("/ticket/:id", h.GetTicket)
	e.PUT("/ticket/:id", h.UpdateTicket)
	e.DELETE("/ticket/:id", h.DeleteTicket)
	e.GET("/tickets/:show", h.ListTicketsForShow)
}

func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req dto.CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Price.Valid && req.Price.Decimal.IsNegative() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "price must not be negative")
	}

	id, err := h.svc.CreateTicket(c.Request().Context(), req.Show, req.User, req.Price)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CreateTicketResponse{TicketID: id})
}

func (h *TicketHandler) GetTicket(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}

	ticket, err := h.svc.GetTicket(c.Request().Context(), id, service.WithDetails())
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgTicketNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}

	var p dto.TicketPatch
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if v, ok := p.Price.Get(); ok && v.IsNegative() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "price must not be negative")
	}

	updated, err := h.svc.UpdateTicket(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	if !updated {
		return echo.NewHTTPError(http.StatusNotFound, msgTicketNotFound)
	}

	return c.JSON(http.StatusOK, dto.DetailResponse{Detail: "Price updated"})
}

func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}

	deleted, err := h.svc.DeleteTicket(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, msgTicketNotFound)
	}

	return c.JSON(http.StatusOK, dto.DetailResponse{Detail: "Ticket removed"})
}

func (h *TicketHandler) ListTicketsForShow(c echo.Context) error {
	// echo matches on RawPath when the request carries one, leaving the
	// param escaped; otherwise it is already decoded.
	show := c.Param("show")
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(show); err == nil {
			show = unescaped
		}
	}

	tickets, err := h.svc.ListTicketsForShow(c.Request().Context(), show)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToTicketResponses(tickets))
}

func ticketID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	return uint(id), nil
}
