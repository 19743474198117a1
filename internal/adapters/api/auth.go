package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
)

var _ ports.AuthGateway = (*Client)(nil)

var errMissingToken = errors.New("no access token in server response")

func (c *Client) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{
		Email:    credentials.Email,
		Password: credentials.Password,
	}, &resp); err != nil {
		return "", err
	}

	if resp.token() == "" {
		return "", errMissingToken
	}
	return resp.token(), nil
}

func (c *Client) Register(ctx context.Context, registration domain.Registration) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/register", registerRequest{
		Name:                 registration.Name,
		Email:                registration.Email,
		Password:             registration.Password,
		PasswordConfirmation: registration.PasswordConfirmation,
	}, &resp); err != nil {
		return "", err
	}

	if resp.token() == "" {
		return "", errMissingToken
	}
	return resp.token(), nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user userDTO
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return domain.User{}, err
	}
	return user.toDomain(), nil
}
