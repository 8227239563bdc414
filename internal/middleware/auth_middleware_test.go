package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserAuth{}))

	config.DB = db
	config.RDB = nil
	config.JwtKey = []byte("test-secret")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string, active bool) models.User {
	t.Helper()

	user := models.User{Mail: "anna@example.com", Name: "Anna", Surname: "Kowalska"}
	require.NoError(t, db.Create(&user).Error)
	auth := models.UserAuth{UserID: user.ID, PasswordHash: "x", Role: role, IsActive: active}
	require.NoError(t, db.Create(&auth).Error)
	return user
}

func signToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString(config.JwtKey)
	require.NoError(t, err)
	return signed
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetUint("user_id"),
			"email":  c.GetString("email"),
			"role":   c.GetString("role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	setupAuthTest(t)
	w := get(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	setupAuthTest(t)
	w := get(protectedRouter(), "nie-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	db := setupAuthTest(t)
	user := seedUser(t, db, "user", true)

	token := signToken(t, strconv.FormatUint(uint64(user.ID), 10), time.Now().Add(-time.Hour))
	w := get(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	db := setupAuthTest(t)
	user := seedUser(t, db, "user", true)

	token := signToken(t, strconv.FormatUint(uint64(user.ID), 10), time.Now().Add(time.Hour))
	w := get(protectedRouter(), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anna@example.com")
}

func TestAuthMiddlewareRejectsInactiveAccount(t *testing.T) {
	db := setupAuthTest(t)
	user := seedUser(t, db, "user", false)

	token := signToken(t, strconv.FormatUint(uint64(user.ID), 10), time.Now().Add(time.Hour))
	w := get(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	db := setupAuthTest(t)

	user := seedUser(t, db, "user", true)
	token := signToken(t, strconv.FormatUint(uint64(user.ID), 10), time.Now().Add(time.Hour))
	w := get(protectedRouter(AdminMiddleware()), token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, db.Model(&models.UserAuth{}).Where("user_id = ?", user.ID).Update("role", "admin").Error)
	w = get(protectedRouter(AdminMiddleware()), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
