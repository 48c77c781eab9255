package main

import (
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/model"
	"fortune_wheel/pkg/token"
)

// issueToken Токен игрока с секретом и сроком жизни из окружения сервера
func issueToken(cfg config.JWTConfig, playerID int) (string, error) {
	if playerID < 1 {
		return "", fmt.Errorf("player id must be positive, got %d", playerID)
	}
	return token.GenerateAccessToken(model.Player{ID: playerID}, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
}
