package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/internal/config"
	"pulseboard/internal/filter"
	"pulseboard/internal/registry"
	"pulseboard/internal/view"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, ds *table.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id core.DatasetID) (*table.Dataset, error) {
	args := m.Called(ctx, id)
	if ds := args.Get(0); ds != nil {
		return ds.(*table.Dataset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]*table.Dataset, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]*table.Dataset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id core.DatasetID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Engine: config.EngineConfig{SampleSize: 10, ZThreshold: 2.0, MaxUploadSize: 1 << 20},
	}
}

func testServer(repo *mockRepository) (*Server, *registry.Registry) {
	reg := registry.New()
	filters := filter.NewEngine()
	views := view.NewService(reg, filters)
	if repo == nil {
		return NewServer(testConfig(), reg, filters, views, nil), reg
	}
	return NewServer(testConfig(), reg, filters, views, repo), reg
}

func TestRestoreFromRepository(t *testing.T) {
	persisted := []*table.Dataset{
		table.NewDataset("FOM Sales", []table.Row{
			{"Date": "2024-03-01", "Amount": "100"},
		}),
	}

	repo := new(mockRepository)
	repo.On("List", mock.Anything).Return(persisted, nil)

	srv, reg := testServer(repo)
	require.NoError(t, srv.RestoreFromRepository(context.Background()))

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "FOM", reg.List()[0].CanonicalName)
	repo.AssertExpectations(t)
}

func TestRestoreWithoutRepository(t *testing.T) {
	srv, reg := testServer(nil)
	require.NoError(t, srv.RestoreFromRepository(context.Background()))
	assert.Equal(t, 0, reg.Len())
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testServer(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestPutFiltersRejectsInvalidState(t *testing.T) {
	srv, _ := testServer(nil)

	w := httptest.NewRecorder()
	body := `{"date_range":{"start":"2024-06-01","end":"2024-01-01"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/filters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
