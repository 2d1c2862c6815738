package acceptance

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/semanticallynull/customers-backend/api"
	"github.com/semanticallynull/customers-backend/customer"
	"github.com/semanticallynull/customers-backend/internal/migrations"
	"github.com/semanticallynull/customers-backend/internal/o11y"
)

type TestServer struct {
	DB      *sqlx.DB
	Router  *gin.Engine
	Store   customer.Store
	Service *customer.Service
}

// NewTestServer runs against a fresh in-memory store, or against PostgreSQL
// when ACCEPTANCE_DATABASE_URL is set.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	ts := &TestServer{}
	if dbURL := os.Getenv("ACCEPTANCE_DATABASE_URL"); dbURL != "" {
		db, err := sqlx.Connect("pgx", dbURL)
		if err != nil {
			t.Fatalf("failed to connect to database: %v", err)
		}
		if err := migrations.Apply(context.Background(), db); err != nil {
			t.Fatalf("failed to migrate database: %v", err)
		}
		cleanupTestData(t, db)
		ts.DB = db
		ts.Store = customer.NewRepository(db)
	} else {
		ts.Store = customer.NewMemoryStore()
	}

	ts.Service = customer.NewService(ts.Store)
	obs := &o11y.Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: prometheus.NewRegistry(),
	}
	ts.Router = api.New(ts.Service, obs, "", "").Router()

	return ts
}

func (ts *TestServer) Close() {
	if ts.DB != nil {
		ts.DB.Close()
	}
}

func cleanupTestData(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec("DELETE FROM customers")
	if err != nil {
		t.Logf("warning: failed to clean customers: %v", err)
	}
}

// Helper methods for making requests
func (ts *TestServer) GET(path string, headers map[string]string) *httptest.ResponseRecorder {
	return ts.do(http.MethodGet, path, nil, headers)
}

func (ts *TestServer) POST(path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	h := map[string]string{"Content-Type": "application/json", "Accept": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return ts.do(http.MethodPost, path, bytes.NewBufferString(body), h)
}

func (ts *TestServer) DELETE(path string) *httptest.ResponseRecorder {
	return ts.do(http.MethodDelete, path, nil, nil)
}

func (ts *TestServer) do(method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) Count(t *testing.T) int {
	t.Helper()
	n, err := ts.Store.Count(context.Background())
	if err != nil {
		t.Fatalf("failed to count customers: %v", err)
	}
	return n
}

func customerInitializer(ts *TestServer) *customer.Initializer {
	return customer.NewInitializer(ts.Service, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
