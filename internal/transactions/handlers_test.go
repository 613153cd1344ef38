package transactions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/apperr"
	"github.com/matheusmosca/store-backend/internal/httpx"
)

// MockService simula o use case de vendas
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req CreateTransactionRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func (m *MockService) FindAll(ctx context.Context, transactionDate string) ([]Transaction, error) {
	args := m.Called(ctx, transactionDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Transaction), args.Error(1)
}

func (m *MockService) FindOne(ctx context.Context, id uint) (*Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

func (m *MockService) Remove(ctx context.Context, id uint) (*MessageResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewTransactionHandler(service, zap.NewNop()).RegisterRoutes(r)
	return r
}

func decodeError(t *testing.T, body []byte) httpx.ErrorResponse {
	t.Helper()
	var resp httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestTransactionHandler_Create(t *testing.T) {
	// Arrange
	service := new(MockService)
	r := setupRouter(service)
	service.On("Create", mock.Anything, mock.MatchedBy(func(req CreateTransactionRequest) bool {
		return len(req.Contents) == 2 && *req.Coupon == "save10" && req.Contents[1].Quantity == 1
	})).Return(&MessageResponse{Message: msgTransactionStored}, nil)

	// Act
	w := httptest.NewRecorder()
	body := `{"total":25,"coupon":"save10","contents":[{"productId":1,"quantity":2,"price":10},{"productId":2,"quantity":1,"price":"5.00"}]}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"sale stored successfully"}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestTransactionHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"empty contents", `{"total":10,"contents":[]}`, []string{"the sale must have at least one item"}},
		{"missing total", `{"contents":[{"productId":1,"quantity":1,"price":1}]}`, []string{"total is required"}},
		{"bad line", `{"total":10,"contents":[{"productId":0,"quantity":0,"price":-2}]}`, []string{"invalid product ID", "quantity must be greater than zero", "invalid price"}},
		{"sub-cent price", `{"total":1,"contents":[{"productId":1,"quantity":3,"price":0.333}]}`, []string{"price must have at most 2 decimal places"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			r := setupRouter(service)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.ElementsMatch(t, tt.expected, decodeError(t, w.Body.Bytes()).Message)
			service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"product missing", apperr.NotFound("product with ID 9 does not exist"), http.StatusNotFound},
		{"inventory", apperr.Validation("product Cake exceeds the available quantity"), http.StatusBadRequest},
		{"coupon expired", apperr.Unprocessable("coupon has expired"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			r := setupRouter(service)
			service.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			body := `{"total":5,"contents":[{"productId":9,"quantity":1,"price":5}]}`
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, apperr.Messages(tt.err), decodeError(t, w.Body.Bytes()).Message)
		})
	}
}

func TestTransactionHandler_FindAll(t *testing.T) {
	service := new(MockService)
	r := setupRouter(service)
	service.On("FindAll", mock.Anything, "2026-03-10").Return([]Transaction{{ID: 1}}, nil)
	service.On("FindAll", mock.Anything, "garbage").Return(nil, apperr.Validation(msgInvalidDate))

	ok := httptest.NewRecorder()
	r.ServeHTTP(ok, httptest.NewRequest(http.MethodGet, "/transactions?transactionDate=2026-03-10", nil))
	bad := httptest.NewRecorder()
	r.ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/transactions?transactionDate=garbage", nil))

	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Equal(t, []string{msgInvalidDate}, decodeError(t, bad.Body.Bytes()).Message)
	service.AssertExpectations(t)
}

func TestTransactionHandler_Remove(t *testing.T) {
	service := new(MockService)
	r := setupRouter(service)
	service.On("Remove", mock.Anything, uint(3)).Return(&MessageResponse{Message: msgTransactionDeleted}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/transactions/3", nil))
	invalid := httptest.NewRecorder()
	r.ServeHTTP(invalid, httptest.NewRequest(http.MethodDelete, "/transactions/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"transaction deleted successfully"}`, w.Body.String())
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	service.AssertExpectations(t)
}
