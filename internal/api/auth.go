package api

import (
	"context"
	"net/http"
)

// Register creates an account and returns the issued credential.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthData, error) {
	var out AuthData
	_, err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   req,
	}, &out)
	return out, err
}

// Login exchanges username and password for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthData, error) {
	var out AuthData
	_, err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   req,
	}, &out)
	return out, err
}

// ValidateToken asks the backend whether a persisted token is still
// good. The token travels in the body, not the Authorization header.
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	var out struct {
		IsValid bool `json:"isValid"`
	}
	_, err := c.do(ctx, request{
		op:     "validate token",
		method: http.MethodPost,
		path:   "/api/auth/validate-token",
		body:   map[string]string{"token": token},
	}, &out)
	if err != nil {
		return false, err
	}
	return out.IsValid, nil
}

// RequestPasswordReset asks the backend to mail a reset code. The
// returned message is intentionally vague about account existence.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return c.do(ctx, request{
		op:     "password reset request",
		method: http.MethodPost,
		path:   "/api/passwordreset/request",
		body:   map[string]string{"email": email},
	}, nil)
}

// ConfirmPasswordReset redeems a reset code for a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) (string, error) {
	return c.do(ctx, request{
		op:     "password reset confirm",
		method: http.MethodPost,
		path:   "/api/passwordreset/confirm",
		body: map[string]string{
			"email":       email,
			"code":        code,
			"newPassword": newPassword,
		},
	}, nil)
}
