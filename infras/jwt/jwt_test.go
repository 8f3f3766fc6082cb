package jwt_test

import (
	"conference/config"
	"conference/infras/jwt"
	"conference/shared/constant"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newConfig(secret string, expireMin int) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "conference-booking"
	cfg.App.SecretKey = secret
	cfg.JWT.AccessExpireMin = expireMin

	return cfg
}

func TestService_GenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig("secret-key", 60))

	token, err := svc.GenerateToken("admin", constant.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, constant.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, claims.TokenID, claims.ID)
}

func TestService_ValidateToken(t *testing.T) {
	svc := jwt.New(newConfig("secret-key", 60))
	other := jwt.New(newConfig("another-key", 60))
	expired := jwt.New(newConfig("secret-key", -1))

	foreign, err := other.GenerateToken("admin", constant.RoleAdmin)
	assert.NoError(t, err)

	stale, err := expired.GenerateToken("admin", constant.RoleAdmin)
	assert.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: jwt.ErrInvalidToken},
		{name: "signed with another key", token: foreign.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "expired", token: stale.AccessToken, wantErr: jwt.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_MissingKey(t *testing.T) {
	svc := jwt.New(newConfig("", 60))

	_, err := svc.GenerateToken("admin", constant.RoleAdmin)
	assert.ErrorIs(t, err, jwt.ErrMissingKey)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestExtractTokenFromRequest(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	assert.Empty(t, jwt.ExtractTokenFromRequest(request, constant.CookieAdminSession))

	request.AddCookie(&http.Cookie{Name: constant.CookieAdminSession, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", jwt.ExtractTokenFromRequest(request, constant.CookieAdminSession))

	request.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", jwt.ExtractTokenFromRequest(request, constant.CookieAdminSession))
}
