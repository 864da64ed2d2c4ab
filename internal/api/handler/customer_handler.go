package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/api/metrics"
	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List returns a page of the caller's customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Param        search  query     string  false  "Case-insensitive match on name or email"
// @Success      200     {object}  listEnvelope{data=[]customerResponse}
// @Failure      401     {object}  envelope
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	res, err := h.customers.ListCustomers(c.Request().Context(), ports.ListCustomersInput{
		RequesterID: u.ID,
		Page:        queryInt(c, "page"),
		Limit:       queryInt(c, "limit"),
		Search:      c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	data := make([]customerResponse, 0, len(res.Items))
	for _, cust := range res.Items {
		data = append(data, toCustomerResponse(cust))
	}

	return c.JSON(http.StatusOK, listEnvelope{
		Success:    true,
		Count:      len(data),
		Pagination: toPagination(res),
		Data:       data,
	})
}

// Get returns one of the caller's customers with its leads.
//
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  envelope{data=customerDetailResponse}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	detail, err := h.customers.GetCustomer(c.Request().Context(), c.Param("id"), u.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: toCustomerDetailResponse(detail)})
}

// Create stores a customer owned by the caller.
//
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CustomerInput  true  "Customer"
// @Success      201   {object}  envelope{data=customerResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ports.CustomerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cust, err := h.customers.CreateCustomer(c.Request().Context(), req, u.ID)
	if err != nil {
		return err
	}
	metrics.CustomersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, envelope{Success: true, Data: toCustomerResponse(cust)})
}

// Update changes the fields present in the payload.
//
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Customer ID"
// @Param        body  body      ports.CustomerInput  true  "Customer"
// @Success      200   {object}  envelope{data=customerResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ports.CustomerInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cust, err := h.customers.UpdateCustomer(c.Request().Context(), c.Param("id"), req, u.ID)
	if err != nil {
		return countDenied("customer", err)
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: toCustomerResponse(cust)})
}

// Delete removes the customer and all of its leads.
//
// @Summary      Delete customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.customers.DeleteCustomer(c.Request().Context(), c.Param("id"), u.ID); err != nil {
		return countDenied("customer", err)
	}
	metrics.CustomersDeletedTotal.Inc()

	return c.JSON(http.StatusOK, envelope{Success: true, Data: struct{}{}})
}

// queryInt parses a positive integer query parameter. Missing or malformed
// values yield 0, which the service replaces with its default.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// countDenied records ownership rejections and returns err unchanged.
func countDenied(resource string, err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.AccessDeniedTotal.WithLabelValues(resource).Inc()
	}
	return err
}
