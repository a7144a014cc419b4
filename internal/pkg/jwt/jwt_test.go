package jwt

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestAccessTokenRoundTrip(t *testing.T) {
	sub := Subject{UserID: 42, Username: "gs1", Role: "gs", DivisionCode: "DV01", AreaCode: "A01"}

	token, expiresAt, err := GenerateAccessToken(sub, testSecret, 120)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if d := time.Until(expiresAt); d < 119*time.Minute || d > 121*time.Minute {
		t.Errorf("expiry in %v, want about 2h", d)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "gs" || claims.AreaCode != "A01" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateAccessToken_Errors(t *testing.T) {
	sub := Subject{UserID: 1, Username: "donor", Role: "donor"}

	expired, _, err := GenerateAccessToken(sub, testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	valid, _, err := GenerateAccessToken(sub, testSecret, 10)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"expired", expired, testSecret, ErrTokenExpired},
		{"wrong secret", valid, "another-secret", ErrTokenInvalid},
		{"garbage", "not.a.token", testSecret, ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tt.token, tt.secret)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
