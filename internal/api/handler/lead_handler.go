package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/api/metrics"
	"github.com/leadbook/crm-api/internal/core/ports"
)

type LeadHandler struct {
	leads ports.LeadService
}

func NewLeadHandler(leads ports.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// ListByCustomer returns every lead of one of the caller's customers.
//
// @Summary      List customer leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  path      string  true  "Customer ID"
// @Success      200         {object}  listEnvelope{data=[]leadResponse}
// @Failure      401         {object}  envelope
// @Failure      404         {object}  envelope
// @Router       /customers/{customerId}/leads [get]
func (h *LeadHandler) ListByCustomer(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	leads, err := h.leads.ListLeads(c.Request().Context(), c.Param("customerId"), u.ID)
	if err != nil {
		return err
	}

	data := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		data = append(data, toLeadResponse(l))
	}
	return c.JSON(http.StatusOK, listEnvelope{Success: true, Count: len(data), Data: data})
}

// Create adds a lead under the customer named in the path. A customerId in
// the body is ignored.
//
// @Summary      Create lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  path      string           true  "Customer ID"
// @Param        body        body      ports.LeadInput  true  "Lead"
// @Success      201         {object}  envelope{data=leadResponse}
// @Failure      400         {object}  envelope
// @Failure      401         {object}  envelope
// @Failure      404         {object}  envelope
// @Router       /customers/{customerId}/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ports.LeadInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	l, err := h.leads.CreateLead(c.Request().Context(), c.Param("customerId"), req, u.ID)
	if err != nil {
		return err
	}
	metrics.LeadsCreatedTotal.WithLabelValues(string(l.Status)).Inc()

	return c.JSON(http.StatusCreated, envelope{Success: true, Data: toLeadResponse(l)})
}

// Get returns a lead with its customer's name and email.
//
// @Summary      Get lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  envelope{data=leadResponse}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	detail, err := h.leads.GetLead(c.Request().Context(), c.Param("id"), u.ID)
	if err != nil {
		return countDenied("lead", err)
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: toLeadDetailResponse(detail)})
}

// Update changes the fields present in the payload.
//
// @Summary      Update lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Lead ID"
// @Param        body  body      ports.LeadInput  true  "Lead"
// @Success      200   {object}  envelope{data=leadResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ports.LeadInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	l, err := h.leads.UpdateLead(c.Request().Context(), c.Param("id"), req, u.ID)
	if err != nil {
		return countDenied("lead", err)
	}
	metrics.LeadsUpdatedTotal.WithLabelValues(string(l.Status)).Inc()

	return c.JSON(http.StatusOK, envelope{Success: true, Data: toLeadResponse(l)})
}

// Delete removes a single lead.
//
// @Summary      Delete lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.leads.DeleteLead(c.Request().Context(), c.Param("id"), u.ID); err != nil {
		return countDenied("lead", err)
	}
	metrics.LeadsDeletedTotal.Inc()

	return c.JSON(http.StatusOK, envelope{Success: true, Data: struct{}{}})
}

// ListByStatus returns the caller's leads in the given status across all of
// their customers. Unknown statuses yield an empty list.
//
// @Summary      List leads by status
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "New, Contacted, Converted or Lost"
// @Success      200     {object}  listEnvelope{data=[]leadResponse}
// @Failure      401     {object}  envelope
// @Router       /leads/status/{status} [get]
func (h *LeadHandler) ListByStatus(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	leads, err := h.leads.ListLeadsByStatus(c.Request().Context(), c.Param("status"), u.ID)
	if err != nil {
		return err
	}

	data := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		data = append(data, toLeadDetailResponse(l))
	}
	return c.JSON(http.StatusOK, listEnvelope{Success: true, Count: len(data), Data: data})
}
