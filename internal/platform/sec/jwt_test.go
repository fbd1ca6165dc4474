// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/netinv/internal/platform/sec"
)

// writeKeyPair generates an RSA key pair and writes both PEM files to a temp dir.
func writeKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "jwt.key")
	pubPath = filepath.Join(dir, "jwt.pub")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	return privPath, pubPath
}

/*
TestTokenService_RoundTrip signs a token and verifies it with a verify-only service.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privPath, pubPath := writeKeyPair(t)

	signer, err := sec.NewTokenService(privPath, pubPath, "netinv")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("ops-bot", sec.RoleEditor, time.Hour)
	require.NoError(t, err)

	verifier, err := sec.NewTokenVerifier(pubPath, "netinv")
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-bot", claims.Operator)
	assert.Equal(t, "editor", claims.Role)
}

/*
TestTokenService_Rejects covers expired tokens, wrong issuers and unknown roles.
*/
func TestTokenService_Rejects(t *testing.T) {
	privPath, pubPath := writeKeyPair(t)

	signer, err := sec.NewTokenService(privPath, pubPath, "netinv")
	require.NoError(t, err)

	expired, err := signer.GenerateAccessToken("ops-bot", sec.RoleViewer, -time.Minute)
	require.NoError(t, err)
	_, err = signer.VerifyToken(expired)
	assert.Error(t, err)

	other, err := sec.NewTokenService(privPath, pubPath, "someone-else")
	require.NoError(t, err)
	foreign, err := other.GenerateAccessToken("ops-bot", sec.RoleViewer, time.Hour)
	require.NoError(t, err)
	_, err = signer.VerifyToken(foreign)
	assert.Error(t, err)

	_, err = signer.GenerateAccessToken("ops-bot", sec.UserRole("root"), time.Hour)
	assert.Error(t, err)

	verifier, err := sec.NewTokenVerifier(pubPath, "netinv")
	require.NoError(t, err)
	_, err = verifier.GenerateAccessToken("ops-bot", sec.RoleViewer, time.Hour)
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleViewer))
}
