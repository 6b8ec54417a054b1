package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"myshop/pkg/logger"
	"myshop/services/cart/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartUseCase is a mock implementation of usecase.CartUseCase
type MockCartUseCase struct {
	mock.Mock
}

func (m *MockCartUseCase) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUseCase) ClearCart(ctx context.Context, userID string) (*entity.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUseCase) GetWishlist(ctx context.Context, userID string) (*entity.Wishlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func (m *MockCartUseCase) ToggleWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, bool, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entity.Wishlist), args.Bool(1), args.Error(2)
}

func (m *MockCartUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) (*entity.Wishlist, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func setupCartTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestGetCart_Unauthorized(t *testing.T) {
	handler := NewCartHandler(new(MockCartUseCase), logger.New())
	router := setupCartTestRouter()
	router.GET("/cart", handler.GetCart)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cart", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCart_IncludesSubtotal(t *testing.T) {
	mockUseCase := new(MockCartUseCase)
	mockUseCase.On("GetCart", mock.Anything, "user-123").Return(&entity.Cart{
		UserID: "user-123",
		Items: []entity.CartItem{
			{ProductID: "p1", UnitPrice: 90, Quantity: 2},
		},
	}, nil)

	handler := NewCartHandler(mockUseCase, logger.New())
	router := setupCartTestRouter()
	router.GET("/cart", asUser("user-123"), handler.GetCart)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cart", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(180), response["subtotal"])
}

func TestAddItem_Success(t *testing.T) {
	mockUseCase := new(MockCartUseCase)
	mockUseCase.On("AddItem", mock.Anything, "user-123", "p1", 2).Return(&entity.Cart{
		UserID: "user-123",
		Items:  []entity.CartItem{{ProductID: "p1", Quantity: 2}},
	}, nil)

	handler := NewCartHandler(mockUseCase, logger.New())
	router := setupCartTestRouter()
	router.POST("/cart/items", asUser("user-123"), handler.AddItem)

	body, _ := json.Marshal(AddItemRequest{ProductID: "p1", Quantity: 2})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/cart/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	mockUseCase := new(MockCartUseCase)
	mockUseCase.On("AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("product not found"))

	handler := NewCartHandler(mockUseCase, logger.New())
	router := setupCartTestRouter()
	router.POST("/cart/items", asUser("user-123"), handler.AddItem)

	body, _ := json.Marshal(AddItemRequest{ProductID: "missing", Quantity: 1})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/cart/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleWishlist_ReportsAdded(t *testing.T) {
	mockUseCase := new(MockCartUseCase)
	mockUseCase.On("ToggleWishlist", mock.Anything, "user-123", "p1").Return(&entity.Wishlist{
		UserID: "user-123",
		Items:  []entity.WishlistItem{{ProductID: "p1"}},
	}, true, nil)

	handler := NewCartHandler(mockUseCase, logger.New())
	router := setupCartTestRouter()
	router.POST("/wishlist/toggle", asUser("user-123"), handler.ToggleWishlist)

	body, _ := json.Marshal(ToggleWishlistRequest{ProductID: "p1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/wishlist/toggle", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["added"])
}
