package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/rent-pe-easy/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testPrincipal() models.Principal {
	return models.Principal{UserID: uuid.New(), Username: "asha", Role: models.RoleAdmin}
}

func TestGenerateAccessToken_Success(t *testing.T) {
	principal := testPrincipal()
	now := time.Now()

	token, err := GenerateAccessToken("test-issuer", principal, time.Hour, "secret-key", now)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %s", token.Claims.Issuer)
	}
	if token.Claims.Subject != principal.UserID.String() {
		t.Errorf("expected subject %s, got %s", principal.UserID, token.Claims.Subject)
	}
	if token.Claims.Role != models.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", token.Claims.Role)
	}
	if !token.Claims.ExpiresAt.Time.Equal(now.Add(time.Hour).Truncate(time.Second)) {
		t.Errorf("unexpected expiry %v", token.Claims.ExpiresAt.Time)
	}
}

func TestGenerateAccessToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		principal models.Principal
		duration  time.Duration
		key       string
	}{
		{"empty issuer", "", testPrincipal(), time.Hour, "key"},
		{"zero duration", "iss", testPrincipal(), 0, "key"},
		{"empty key", "iss", testPrincipal(), time.Hour, ""},
		{"nil subject", "iss", models.Principal{}, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateAccessToken(tt.issuer, tt.principal, tt.duration, tt.key, time.Now())
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseAccessToken_Success(t *testing.T) {
	principal := testPrincipal()
	generated, err := GenerateAccessToken("test-issuer", principal, 5*time.Minute, "secret-key", time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAndParseAccessToken(generated.SignedString, "secret-key", "test-issuer")
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("expected subject to parse, got %v", err)
	}
	if userID != principal.UserID {
		t.Errorf("expected userID %s, got %s", principal.UserID, userID)
	}
	if claims.Role != principal.Role {
		t.Errorf("expected role %s, got %s", principal.Role, claims.Role)
	}
}

func TestValidateAndParseAccessToken_InvalidKey(t *testing.T) {
	generated, _ := GenerateAccessToken("iss", testPrincipal(), time.Minute, "correct-key", time.Now())

	_, err := ValidateAndParseAccessToken(generated.SignedString, "wrong-key", "iss")
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error, got %v", err)
	}
}

func TestValidateAndParseAccessToken_Expired(t *testing.T) {
	generated, _ := GenerateAccessToken("iss", testPrincipal(), time.Minute, "key", time.Now().Add(-time.Hour))

	_, err := ValidateAndParseAccessToken(generated.SignedString, "key", "iss")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseAccessToken_WrongIssuer(t *testing.T) {
	generated, _ := GenerateAccessToken("real-issuer", testPrincipal(), time.Minute, "key", time.Now())

	_, err := ValidateAndParseAccessToken(generated.SignedString, "key", "fake-issuer")
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Errorf("expected jwt.ErrTokenInvalidIssuer, got %v", err)
	}
}

func TestValidateAndParseAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := models.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err = ValidateAndParseAccessToken(signed, "key", "iss"); err == nil {
		t.Error("expected HS512 token to be rejected")
	}
}

func TestValidateAndParseAccessToken_NonUUIDSubject(t *testing.T) {
	claims := models.AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	if _, err := ValidateAndParseAccessToken(signed, "key", "iss"); err == nil {
		t.Error("expected error for non-uuid subject")
	}
}

func TestValidateAndParseAccessToken_Malformed(t *testing.T) {
	if _, err := ValidateAndParseAccessToken("not.a.token", "key", "iss"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"extra spaces", "  Bearer   abc  ", "abc", false},
		{"empty", "", "", true},
		{"missing token", "Bearer", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationHeader) {
					t.Fatalf("expected ErrInvalidAuthorizationHeader, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
