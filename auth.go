package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenExpiry     = 6 * time.Hour
	tokenRateWindow = 60 * time.Second
	maxTokenIssues  = 20
)

// Auth issues and verifies spectator tokens. A token names the battle it
// grants access to.
type Auth struct {
	jwtSecret []byte

	// Rate limiting for token issuance (IP -> attempts)
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth creates a new Auth handler. db may be nil, in which case the
// secret only lives as long as the process.
func NewAuth(db *DB) *Auth {
	return &Auth{
		jwtSecret: loadOrCreateSecret(db),
		rateMap:   make(map[string]*rateEntry),
	}
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting("jwt_secret"); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting("jwt_secret", hex.EncodeToString(secret)); err != nil {
			log.Printf("feed: could not persist JWT secret: %v", err)
		}
	}
	return secret
}

// spectatorClaims binds a token to one battle
type spectatorClaims struct {
	Battle string `json:"bid"`
	jwt.RegisteredClaims
}

// IssueToken returns a signed token for watching a battle
func (a *Auth) IssueToken(battleID string) (string, error) {
	now := time.Now()
	claims := spectatorClaims{
		Battle: battleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateID(8),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
}

// ValidateToken verifies a token and returns the battle it grants
func (a *Auth) ValidateToken(tokenStr string) (string, error) {
	var claims spectatorClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if claims.Battle == "" {
		return "", fmt.Errorf("token grants no battle")
	}
	return claims.Battle, nil
}

// AllowIssue rate-limits token requests per IP
func (a *Auth) AllowIssue(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := time.Now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(tokenRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxTokenIssues
}
