package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myshop/pkg/logger"
	"myshop/services/notification/internal/entity"
	"myshop/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationUseCase is a mock implementation of usecase.NotificationUseCase
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) SendToAll(ctx context.Context, callerRole, title, message string, onProgress func(text string)) (entity.SendSummary, error) {
	args := m.Called(ctx, callerRole, title, message, onProgress)
	return args.Get(0).(entity.SendSummary), args.Error(1)
}

func (m *MockNotificationUseCase) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.DisplayNotification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.DisplayNotification), args.Int(1), args.Error(2)
}

func (m *MockNotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func authAs(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	handler := &NotificationHandler{
		logger: logger.New(),
	}

	router := setupNotificationTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "Unauthorized")
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("GetNotifications", mock.Anything, "user-123", 50, 0).Return([]entity.DisplayNotification{
		{ID: "b1", Title: "Holiday sale", Timestamp: time.Now(), IsBroadcast: true},
		{ID: "n1", Title: "Order shipped", Timestamp: time.Now().Add(-time.Hour)},
	}, 1, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.GET("/notifications", authAs("user-123", "user"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
	assert.Equal(t, float64(1), response["unread_count"])
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_LimitClamped(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	// Out-of-range limits fall back to the default
	mockUseCase.On("GetNotifications", mock.Anything, "user-123", 50, 0).Return([]entity.DisplayNotification{}, 0, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.GET("/notifications", authAs("user-123", "user"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?limit=500", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestMarkAllRead_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("MarkAllRead", mock.Anything, "user-123").Return(3, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/read-all", authAs("user-123", "user"), handler.MarkAllRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/read-all", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(3), response["updated"])
	mockUseCase.AssertExpectations(t)
}

func TestMarkAllRead_Unauthorized(t *testing.T) {
	handler := &NotificationHandler{
		logger: logger.New(),
	}

	router := setupNotificationTestRouter()
	router.POST("/notifications/read-all", handler.MarkAllRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/read-all", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBroadcastNotification_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("SendToAll", mock.Anything, "admin", "Sale", "Everything 50% off", mock.Anything).
		Return(entity.SendSummary{Total: 10, Failed: 0, BroadcastOk: true}, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/broadcast", authAs("admin-1", "admin"), handler.BroadcastNotification)

	body, _ := json.Marshal(BroadcastRequest{Title: "Sale", Message: "Everything 50% off"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/broadcast", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Notification sent to 10 users", response["message"])
	assert.Equal(t, float64(10), response["total"])
	assert.Equal(t, float64(0), response["failed"])
	assert.Equal(t, true, response["broadcast_ok"])
	mockUseCase.AssertExpectations(t)
}

func TestBroadcastNotification_Forbidden(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("SendToAll", mock.Anything, "user", "Sale", "Everything 50% off", mock.Anything).
		Return(entity.SendSummary{}, usecase.ErrUnauthorized)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/broadcast", authAs("user-123", "user"), handler.BroadcastNotification)

	body, _ := json.Marshal(BroadcastRequest{Title: "Sale", Message: "Everything 50% off"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/broadcast", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBroadcastNotification_InvalidBody(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/broadcast", authAs("admin-1", "admin"), handler.BroadcastNotification)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/broadcast", bytes.NewBufferString(`{"title":"Sale"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBroadcastNotification_BroadcastOnlyStatus(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("SendToAll", mock.Anything, "admin", "Sale", "Everything 50% off", mock.Anything).
		Return(entity.SendSummary{Total: 5, Failed: 5, BroadcastOk: true}, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/broadcast", authAs("admin-1", "admin"), handler.BroadcastNotification)

	body, _ := json.Marshal(BroadcastRequest{Title: "Sale", Message: "Everything 50% off"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/broadcast", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Notification sent via announcement", response["message"])
}

func TestBroadcastNotification_PartialStatus(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	mockUseCase.On("SendToAll", mock.Anything, "admin", "Sale", "Everything 50% off", mock.Anything).
		Return(entity.SendSummary{Total: 10, Failed: 3, BroadcastOk: true}, nil)

	handler := NewNotificationHandler(mockUseCase, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.POST("/notifications/broadcast", authAs("admin-1", "admin"), handler.BroadcastNotification)

	body, _ := json.Marshal(BroadcastRequest{Title: "Sale", Message: "Everything 50% off"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/broadcast", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Notification sent to 7 of 10 users", response["message"])
}
