package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
)

func rbacContext(claims *models.JWTClaims, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if claims != nil {
		c.Set(ContextUserKey, claims)
	}
	if paramID != "" {
		c.Params = gin.Params{{Key: "id", Value: paramID}}
	}
	return c, rec
}

func TestRBACRejectsMissingClaims(t *testing.T) {
	c, rec := rbacContext(nil, "")

	RBAC("ADMIN")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBACAllowsMatchingRole(t *testing.T) {
	c, _ := rbacContext(&models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}, "")

	RBAC("ADMIN", "TEACHER")(c)

	assert.False(t, c.IsAborted())
}

func TestRBACRejectsOtherRole(t *testing.T) {
	c, rec := rbacContext(&models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "")

	RBAC("ADMIN", "TEACHER")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRBACSelfMatchesOwnID(t *testing.T) {
	c, _ := rbacContext(&models.JWTClaims{UserID: "student-1", Role: models.RoleStudent}, "student-1")

	RBAC("ADMIN", "SELF")(c)

	assert.False(t, c.IsAborted())
}

func TestRBACSelfRejectsForeignID(t *testing.T) {
	c, rec := rbacContext(&models.JWTClaims{UserID: "student-1", Role: models.RoleStudent}, "student-2")

	RBAC("ADMIN", "SELF")(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	c, _ := rbacContext(&models.JWTClaims{UserID: "p1", Role: models.RoleParent}, "")

	RequireRoles(models.RoleParent)(c)

	assert.False(t, c.IsAborted())
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	JWT(nil)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Token abc")

	JWT(nil)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
