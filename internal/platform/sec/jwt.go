// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token signing and verification for API callers.
//
// # Architecture
//
// Netinv has no user accounts. Operators and automation receive RS256 access
// tokens minted offline by cmd/token; the API server only holds the public key
// and verifies them in [middleware.Authenticate].
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/netinv/pkg/uuidv7"
)

// AuthClaims represents the payload embedded inside an access token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Operator is the human or automation identity the token was minted for.
	Operator string `json:"opr"`
	// Role is one of the [UserRole] values.
	Role string `json:"rol"`
}

// TokenService verifies, and optionally signs, RS256 access tokens.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenVerifier creates a verify-only TokenService from a PEM public key file.
func NewTokenVerifier(publicKeyPath, issuer string) (*TokenService, error) {
	publicKey, err := readPublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}
	return &TokenService{publicKey: publicKey, issuer: issuer}, nil
}

// NewTokenService creates a TokenService able to both sign and verify tokens.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKey, err := readPublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
	}, nil
}

func readPublicKey(path string) (*rsa.PublicKey, error) {
	publicKeyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", path, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}
	return publicKey, nil
}

// GenerateAccessToken signs a token for operator with the given role.
func (service *TokenService) GenerateAccessToken(operator string, role UserRole, timeToLive time.Duration) (string, error) {
	if service.privateKey == nil {
		return "", fmt.Errorf("sec: token service has no signing key")
	}
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q", role)
	}

	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidv7.New(),
			Subject:   operator,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Operator: operator,
		Role:     string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, issuer and expiry of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
