package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/application/admin"
	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/domain/shared"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
	"github.com/storeops/backoffice/internal/interfaces/http/dto"
)

func newBalanceRouter(repo *MockBalanceRepository) *gin.Engine {
	list := admin.NewBalanceListService(repo, cache.NewInMemoryCountCache(), admin.DefaultConfig(), zap.NewNop())
	handler := NewBalanceHandler(list)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestBalanceList_HTTP(t *testing.T) {
	funded := payment.NewBalance(uuid.New())
	funded.AssignAddress("addr-1")
	funded.SetAmount(decimal.NewFromFloat(1.5))

	repo := new(MockBalanceRepository)
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]payment.Balance{*funded}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	engine := newBalanceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)

	rows := resp.Data.([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "addr-1", row["address"])
	assert.Equal(t, "1.5", row["balance"])
}

func TestBalanceSetAmount_HTTP(t *testing.T) {
	balance := payment.NewBalance(uuid.New())

	repo := new(MockBalanceRepository)
	repo.On("FindByID", mock.Anything, balance.ID).Return(balance, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(b *payment.Balance) bool {
		return b.Amount.Equal(decimal.NewFromFloat(2.25))
	})).Return(nil)

	engine := newBalanceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/balances/"+balance.ID.String()+"/balance",
		strings.NewReader(`{"balance": "2.25"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestBalanceSetAmount_RejectsNegative(t *testing.T) {
	balance := payment.NewBalance(uuid.New())

	repo := new(MockBalanceRepository)

	engine := newBalanceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/balances/"+balance.ID.String()+"/balance",
		strings.NewReader(`{"balance": "-1"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBalanceList_FilterPassthrough(t *testing.T) {
	ownerID := uuid.NewString()

	repo := new(MockBalanceRepository)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["has_address"] == true && f.Filters["created_by_id"] == ownerID
	})).Return([]payment.Balance{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	engine := newBalanceRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances?has_address=true&created_by_id="+ownerID, nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
