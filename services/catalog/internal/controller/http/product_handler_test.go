package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"myshop/pkg/logger"
	"myshop/services/catalog/internal/entity"
	"myshop/services/catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductUseCase is a mock implementation of usecase.ProductUseCase
type MockProductUseCase struct {
	mock.Mock
}

func (m *MockProductUseCase) CreateProduct(input usecase.ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error) {
	args := m.Called(input, imageFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) UpdateProduct(productID string, input usecase.ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error) {
	args := m.Called(productID, input, imageFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) ArchiveProduct(productID string) error {
	args := m.Called(productID)
	return args.Error(0)
}

func (m *MockProductUseCase) GetProduct(productID string) (*entity.Product, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) ListProducts(search string, includeArchived bool, limit, offset int) ([]*entity.Product, int64, error) {
	args := m.Called(search, includeArchived, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Error(2)
}

func TestListProducts_Search(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	mockUseCase.On("ListProducts", "keyboard", false, 50, 0).Return([]*entity.Product{
		{ID: "p1", Title: "Mechanical Keyboard"},
	}, int64(1), nil)

	handler := NewProductHandler(mockUseCase, logger.New())
	router := setupCatalogTestRouter()
	router.GET("/products", handler.ListProducts)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products?search=keyboard", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])
	mockUseCase.AssertExpectations(t)
}

func TestListProducts_ArchivedOnlyForAdmins(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	// Non-admin asking for archived products still gets the live view
	mockUseCase.On("ListProducts", "", false, 50, 0).Return([]*entity.Product{}, int64(0), nil)

	handler := NewProductHandler(mockUseCase, logger.New())
	router := setupCatalogTestRouter()
	router.GET("/products", withUser("user-123", "user"), handler.ListProducts)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products?include_archived=true", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	mockUseCase.On("GetProduct", "missing").Return(nil, errors.New("record not found"))

	handler := NewProductHandler(mockUseCase, logger.New())
	router := setupCatalogTestRouter()
	router.GET("/products/:product_id", handler.GetProduct)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_MissingTitle(t *testing.T) {
	handler := NewProductHandler(new(MockProductUseCase), logger.New())
	router := setupCatalogTestRouter()
	router.POST("/products", handler.CreateProduct)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
