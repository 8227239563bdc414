package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/kokolodziejska/zagrane/config"
	"github.com/kokolodziejska/zagrane/models"
)

const cookieName = "access_token"

// CachedUserData - единая структура данных пользователя в кэше.
type CachedUserData struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

// AuthMiddleware проверяет токен доступа из куки и кладет данные
// пользователя в контекст. Профиль кэшируется в Redis, чтобы не ходить
// в БД на каждый запрос.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			handleAuthError(c, "Brak tokenu")
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			handleAuthError(c, "Niepoprawny token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Niepoprawny token")
			return
		}

		sub, _ := claims["sub"].(string)
		userID64, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			handleAuthError(c, "Niepoprawny token")
			return
		}
		userID := uint(userID64)

		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cached), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("Не удалось разобрать кэш пользователя", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Ошибка чтения из Redis", "error", err, "user_id", userID)
			}
		}

		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			handleAuthError(c, "Nie znaleziono użytkownika")
			return
		}

		var auth models.UserAuth
		if err := config.DB.Where("user_id = ?", userID).First(&auth).Error; err != nil || !auth.IsActive {
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			handleAuthError(c, "Konto jest nieaktywne")
			return
		}

		userData := CachedUserData{
			UserID:  user.ID,
			Email:   user.Mail,
			Name:    user.Name,
			Surname: user.Surname,
			Role:    auth.Role,
		}

		if config.RDB != nil {
			if jsonData, err := json.Marshal(userData); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
					slog.Error("Не удалось записать кэш пользователя", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &userData)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("email", userData.Email)
	c.Set("name", userData.Name)
	c.Set("surname", userData.Surname)
	c.Set("role", userData.Role)
	c.Next()
}

// AdminMiddleware пускает дальше только пользователей с ролью admin.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Brak uprawnień"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
