package config

import (
	"log/slog"
	"os"
)

// JwtKey используется для подписи и проверки токенов доступа.
var JwtKey []byte

func LoadJwtKey() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Критическая ошибка: переменная окружения JWT_SECRET не установлена.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
