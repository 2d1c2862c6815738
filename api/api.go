package api

import (
	"context"
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/semanticallynull/customers-backend/customer"
	"github.com/semanticallynull/customers-backend/internal/middleware"
	"github.com/semanticallynull/customers-backend/internal/o11y"
)

// CustomerService is what the HTTP boundary needs from the domain.
type CustomerService interface {
	Create(ctx context.Context, in customer.NewCustomer) (customer.Customer, error)
	FindAll(ctx context.Context) (iter.Seq[customer.Customer], error)
	FindAllByState(ctx context.Context, state string) (iter.Seq[customer.Customer], error)
	FindByID(ctx context.Context, id uuid.UUID) (customer.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type API struct {
	r   *gin.Engine
	svc CustomerService
}

// New builds the router. /metrics is guarded by basic auth when a metrics
// username is configured.
func New(svc CustomerService, obs *o11y.Observability, metricsUsername, metricsPassword string) *API {
	a := &API{
		r:   gin.New(),
		svc: svc,
	}

	a.r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.Logging(obs.Logger),
		middleware.Metrics(obs.Registry),
	)

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metrics := []gin.HandlerFunc{gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))}
	if metricsUsername != "" {
		metrics = append([]gin.HandlerFunc{gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword})}, metrics...)
	}
	a.r.GET("/metrics", metrics...)

	customers := a.r.Group("/customers")
	{
		customers.POST("", middleware.RequireJSONBody(), middleware.AcceptJSON(), a.createCustomer)
		customers.GET("", middleware.AcceptJSON(), a.listCustomers)
		customers.GET("/:id", middleware.AcceptJSON(), a.getCustomer)
		customers.DELETE("/:id", a.deleteCustomer)
	}

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}
