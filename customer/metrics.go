package customer

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

// SizeGauge exposes the number of live customers. A failed count reports -1.
func SizeGauge(c counter) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "customers_stored",
			Help: "Number of live customers in the store",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := c.Count(ctx)
			if err != nil {
				return -1
			}
			return float64(n)
		},
	)
}
