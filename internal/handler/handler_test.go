package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/middleware"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func TestGradeHandlerCreateRejectsInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGradeHandler(nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/grades", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotificationHandlerFeedRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewNotificationHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)

	handler.Feed(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceHandlerMarkRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(nil)

	body := `{"studentId":"s1","date":"2026-03-02","status":"PRESENT"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Mark(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimsFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, claimsFromContext(c))

	c.Set(middleware.ContextUserKey, "not claims")
	assert.Nil(t, claimsFromContext(c))

	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}
	c.Set(middleware.ContextUserKey, claims)
	assert.Equal(t, claims, claimsFromContext(c))
}
