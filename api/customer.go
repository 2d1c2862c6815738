package api

import (
	"errors"
	"io"
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/semanticallynull/customers-backend/customer"
	"github.com/semanticallynull/customers-backend/internal/middleware"
)

const maxBodyBytes = 1 << 20

type customerResponse struct {
	UUID      uuid.UUID      `json:"uuid"`
	Name      string         `json:"name"`
	Birthdate customer.Date  `json:"birthdate"`
	State     customer.State `json:"state"`
}

func toCustomerResponse(c customer.Customer) customerResponse {
	return customerResponse{
		UUID:      c.ID,
		Name:      c.Name,
		Birthdate: c.Birthdate,
		State:     c.State,
	}
}

type errorResponse struct {
	Code       string               `json:"code"`
	Message    string               `json:"message"`
	Violations []customer.Violation `json:"violations,omitempty"`
}

func customerLocation(id uuid.UUID) string {
	return "/customers/" + id.String()
}

func (a *API) createCustomer(c *gin.Context) {
	in, err := decodeNewCustomer(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		middleware.GetLogger(c).Debug("Rejected malformed customer body", "error", err)
		c.JSON(http.StatusBadRequest, errorResponse{Code: "MALFORMED_BODY", Message: err.Error()})
		return
	}

	cust, err := a.svc.Create(c.Request.Context(), in)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.Header("Location", customerLocation(cust.ID))
	c.JSON(http.StatusCreated, toCustomerResponse(cust))
}

// decodeNewCustomer accepts exactly one JSON object and rejects fields other
// than the known ones.
func decodeNewCustomer(r io.Reader) (customer.NewCustomer, error) {
	var in customer.NewCustomer
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return customer.NewCustomer{}, err
	}
	if dec.More() {
		return customer.NewCustomer{}, errors.New("unexpected data after customer object")
	}
	return in, nil
}

func (a *API) listCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		seq iter.Seq[customer.Customer]
		err error
	)
	if state, ok := c.GetQuery("state"); ok {
		seq, err = a.svc.FindAllByState(ctx, state)
	} else {
		seq, err = a.svc.FindAll(ctx)
	}
	if err != nil {
		a.writeError(c, err)
		return
	}

	resp := make([]customerResponse, 0)
	for cust := range seq {
		resp = append(resp, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) getCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	cust, err := a.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(cust))
}

func (a *API) deleteCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	deleted, err := a.svc.Delete(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func customerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_ID", Message: err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

func (a *API) writeError(c *gin.Context, err error) {
	logger := middleware.GetLogger(c)

	var verr *customer.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Debug("Customer validation failed", "error", err)
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:       "VALIDATION_FAILED",
			Message:    "customer is invalid",
			Violations: verr.Violations,
		})
	case errors.Is(err, customer.ErrInvalidState):
		c.JSON(http.StatusBadRequest, errorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, customer.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		logger.Error("Customer operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: "internal error"})
	}
}
