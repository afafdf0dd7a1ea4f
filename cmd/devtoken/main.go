// cmd/devtoken - mint a development bearer token
//
// The identity provider issues tokens in production; this tool signs a
// compatible token locally so the API can be exercised without it.
//
//	go run ./cmd/devtoken -user 1 -username alice -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.Uint("user", 1, "user id to embed in the token")
	username := flag.String("username", "dev", "username claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  *userID,
		"username": *username,
		"iat":      now.Unix(),
		"exp":      now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatal("Failed to sign token:", err)
	}

	fmt.Println(signed)
}
