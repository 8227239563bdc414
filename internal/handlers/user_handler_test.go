package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

func userRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/user/register", RegisterHandler)
	r.POST("/api/user/login", LoginHandler)
	r.POST("/api/user/logout", LogoutHandler)
	r.POST("/api/user/change-details", func(c *gin.Context) {
		// Подстановка контекста аутентификации вместо middleware
		c.Set("user_id", userID)
	}, ChangeDetailsHandler)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, mail, password, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Mail: mail, Name: "Anna", Surname: "Kowalska"}
	require.NoError(t, db.Create(&user).Error)
	auth := models.UserAuth{UserID: user.ID, PasswordHash: string(hash), Role: role, IsActive: true}
	require.NoError(t, db.Create(&auth).Error)
	return user
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"ok", "Haslo123!", false},
		{"too short", "Ha1!", true},
		{"no upper", "haslo123!", true},
		{"no lower", "HASLO123!", true},
		{"no digit", "HasloHaslo!", true},
		{"no special", "Haslo1234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePassword(tt.password)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	db := setupTestDB(t)
	r := userRouter(0)

	body := gin.H{"email": "Jan.Nowak@Example.com", "name": "Jan", "surname": "Nowak", "password": "Haslo123!"}
	w := doJSON(t, r, http.MethodPost, "/api/user/register", body)
	require.Equal(t, http.StatusOK, w.Code)

	// Email нормализуется к нижнему регистру
	var user models.User
	require.NoError(t, db.Where("mail = ?", "jan.nowak@example.com").First(&user).Error)

	var auth models.UserAuth
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&auth).Error)
	assert.Equal(t, "user", auth.Role)
	assert.True(t, auth.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte("Haslo123!")))

	// Повторная регистрация на тот же email
	w = doJSON(t, r, http.MethodPost, "/api/user/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandlerRejectsWeakPassword(t *testing.T) {
	setupTestDB(t)
	r := userRouter(0)

	body := gin.H{"email": "jan@example.com", "name": "Jan", "surname": "Nowak", "password": "haslo"}
	w := doJSON(t, r, http.MethodPost, "/api/user/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler(t *testing.T) {
	db := setupTestDB(t)
	config.JwtKey = []byte("test-secret")
	seedUser(t, db, "anna@example.com", "Haslo123!", "user")

	r := userRouter(0)
	w := doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{"email": "anna@example.com", "password": "Haslo123!"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Anna", resp["name"])
	assert.Equal(t, "user", resp["role"])

	// Токен уходит httponly-кукой
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	config.JwtKey = []byte("test-secret")
	seedUser(t, db, "anna@example.com", "Haslo123!", "user")

	r := userRouter(0)
	w := doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{"email": "anna@example.com", "password": "zlehaslo"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nieprawidłowy email lub hasło.", resp["error"])
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	r := userRouter(0)
	w := doJSON(t, r, http.MethodPost, "/api/user/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestChangeDetailsHandler(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "anna@example.com", "Haslo123!", "user")

	r := userRouter(user.ID)
	w := doJSON(t, r, http.MethodPost, "/api/user/change-details", gin.H{"name": "Maria", "surname": "Nowak"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, "Nowak", got.Surname)
}

func TestListUsersHandler(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 25; i++ {
		seedUser(t, db, fmt.Sprintf("user%d@example.com", i), "Haslo123!", "user")
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/user/all-users", ListUsersHandler)

	// Постраничный режим: размер страницы по умолчанию
	w := doJSON(t, r, http.MethodGet, "/api/user/all-users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(25), page.TotalRows)
	users, ok := page.Data.([]any)
	require.True(t, ok)
	assert.Len(t, users, DefaultPageSize)

	// all=true отдает всех без пагинации
	w = doJSON(t, r, http.MethodGet, "/api/user/all-users?all=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all struct {
		Data []models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all.Data, 25)
}

func TestChangeDetailsHandlerValidates(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "anna@example.com", "Haslo123!", "user")

	r := userRouter(user.ID)
	w := doJSON(t, r, http.MethodPost, "/api/user/change-details", gin.H{"name": "M", "surname": "Nowak"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
