package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"
)

func testKeypair(t *testing.T) (*Generator, *Verifier) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	gen := NewGenerator(key, "ead-platform", "ead-users", "test-key", time.Hour)
	ver := NewVerifier(&key.PublicKey, "ead-platform", "ead-users")
	return gen, ver
}

func TestAccessTokenRoundTrip(t *testing.T) {
	gen, ver := testKeypair(t)

	token, jti, err := gen.GenerateAccessToken("user-1", []string{"user"}, "Mozilla/5.0")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}

	claims, err := ver.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Principal() != "user-1" || claims.Device != "Mozilla/5.0" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.IsAdmin() {
		t.Fatal("plain user token claims admin")
	}
	if claims.ID != jti {
		t.Fatalf("jti mismatch: %q vs %q", claims.ID, jti)
	}
}

func TestAdminToken(t *testing.T) {
	gen, ver := testKeypair(t)

	token, _, err := gen.GenerateAdminToken("ops-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ver.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.IsAdmin() {
		t.Fatal("admin token without admin role")
	}
}

func TestVerifyRejectsWrongIssuerAndAudience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	gen := NewGenerator(key, "other-issuer", "ead-users", "", time.Hour)
	ver := NewVerifier(&key.PublicKey, "ead-platform", "ead-users")

	token, _, err := gen.GenerateAccessToken("user-1", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ver.Verify(token); err == nil {
		t.Fatal("wrong issuer accepted")
	}

	gen = NewGenerator(key, "ead-platform", "other-audience", "", time.Hour)
	token, _, err = gen.GenerateAccessToken("user-1", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ver.Verify(token); err == nil {
		t.Fatal("wrong audience accepted")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	gen, _ := testKeypair(t)
	_, ver := testKeypair(t)

	token, _, err := gen.GenerateAccessToken("user-1", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ver.Verify(token); err == nil {
		t.Fatal("token signed with a different key accepted")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	gen := NewGenerator(key, "ead-platform", "ead-users", "", -time.Minute)
	ver := NewVerifier(&key.PublicKey, "ead-platform", "ead-users")

	token, _, err := gen.GenerateAccessToken("user-1", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ver.Verify(token); err == nil {
		t.Fatal("expired token accepted")
	}
}
