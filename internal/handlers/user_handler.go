package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

const (
	CookieName       = "access_token"
	accessTokenTTL   = time.Hour
	cookieMaxAgeSecs = 3600
)

var (
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reDigit   = regexp.MustCompile(`[0-9]`)
	reSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// validatePassword возвращает текст ошибки для пользователя или пустую строку.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Hasło musi mieć min. 8 znaków"
	}
	if !reUpper.MatchString(password) {
		return "Hasło musi posiadać przynajmniej jedną wielką literę"
	}
	if !reLower.MatchString(password) {
		return "Hasło musi posiadać przynajmniej jedną małą literę"
	}
	if !reDigit.MatchString(password) {
		return "Hasło musi posiadać przynajmniej jedną cyfrę"
	}
	if !reSpecial.MatchString(password) {
		return "Hasło musi posiadać przynajmniej jeden znak specjalny"
	}
	return ""
}

func validateName(name string) string {
	if len(name) < 2 || len(name) > 15 {
		return "Imię musi mieć min. 2 znaki i max. 15 znaków"
	}
	return ""
}

func validateSurname(surname string) string {
	if len(surname) < 2 || len(surname) > 15 {
		return "Nazwisko musi mieć min. 2 znaki i max. 15 znaków"
	}
	return ""
}

// createAccessToken выпускает подписанный JWT с данными пользователя.
func createAccessToken(user *models.User, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     strconv.FormatUint(uint64(user.ID), 10),
		"exp":     now.Add(accessTokenTTL).Unix(),
		"name":    user.Name,
		"surname": user.Surname,
		"email":   user.Mail,
		"role":    role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey)
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler создает пользователя и его учетные данные.
func RegisterHandler(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	input.Surname = strings.TrimSpace(input.Surname)

	var existing models.User
	if err := config.DB.Where("mail = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Istnieje konto zarejestrowane na ten Email"})
		return
	}

	if msg := validateName(input.Name); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := validateSurname(input.Surname); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := validatePassword(input.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd zapisu użytkownika"})
		return
	}

	user := models.User{Mail: input.Email, Name: input.Name, Surname: input.Surname}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		auth := models.UserAuth{UserID: user.ID, PasswordHash: string(hash), Role: "user", IsActive: true}
		return tx.Create(&auth).Error
	})
	if err != nil {
		slog.Error("Ошибка регистрации пользователя", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd zapisu użytkownika"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Mail, "name": user.Name})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler проверяет пароль и ставит httponly-куку с токеном доступа.
func LoginHandler(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := config.DB.Where("mail = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nieprawidłowy email lub hasło."})
		return
	}

	var auth models.UserAuth
	if err := config.DB.Where("user_id = ?", user.ID).First(&auth).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nieprawidłowy email lub hasło."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nieprawidłowy email lub hasło."})
		return
	}

	token, err := createAccessToken(&user, auth.Role)
	if err != nil {
		slog.Error("Не удалось выпустить токен", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd logowania"})
		return
	}

	// secure=false: за TLS отвечает реверс-прокси
	c.SetCookie(CookieName, token, cookieMaxAgeSecs, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"clientId": user.ID,
		"name":     user.Name,
		"surname":  user.Surname,
		"email":    user.Mail,
		"role":     auth.Role,
	})
}

// LogoutHandler снимает куку и чистит кэш данных пользователя.
func LogoutHandler(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// IsLoginHandler сообщает клиенту, действительна ли его сессия.
func IsLoginHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"isLogin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isLogin": true,
		"userId":  userID,
		"name":    c.GetString("name"),
		"surname": c.GetString("surname"),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}

type changeDetailsInput struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
}

// ChangeDetailsHandler меняет имя и фамилию текущего пользователя.
func ChangeDetailsHandler(c *gin.Context) {
	var input changeDetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nie znaleziono użytkownika"})
		return
	}

	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	if msg := validateName(name); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := validateSurname(surname); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user.Name = name
	user.Surname = surname
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Błąd zapisu użytkownika"})
		return
	}

	// Кэш профиля устарел — сбрасываем, чтобы middleware перечитал из БД
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", user.ID))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

// ListUsersHandler отдает пользователей: весь список при all=true,
// иначе постранично.
func ListUsersHandler(c *gin.Context) {
	query := config.DB.Model(&models.User{}).Preload("Department").Order("id asc")

	if c.Query("all") == "true" {
		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})
		return
	}

	var totalRows int64
	config.DB.Model(&models.User{}).Count(&totalRows)

	var users []models.User
	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, users, totalRows))
}
