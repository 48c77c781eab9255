package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Player Игрок, крутящий колесо. Идентификатор приходит из access токена.
type Player struct {
	ID int
}

type PlayerClaims struct {
	jwt.RegisteredClaims
}
