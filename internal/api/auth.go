package api

import (
	"context"
	"errors"
	"net/http"
)

// ErrUsernameTaken is returned by RegisterGuest when the chosen name exists.
var ErrUsernameTaken = errors.New("api: username already taken")

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type changeUsernameRequest struct {
	NewUsername string `json:"newUsername"`
}

// Login authenticates and returns the bearer token to carry on every
// subsequent authenticated call.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	err := c.request(ctx, http.MethodPost, "/security/login", "",
		credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return "Bearer " + resp.Token, nil
}

// Register creates an account and returns the bearer token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	err := c.request(ctx, http.MethodPost, "/security/register", "",
		credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return "Bearer " + resp.Token, nil
}

// RegisterGuest registers a passwordless guest account. The server rejects
// duplicate usernames, which is the only failure a caller can act on.
func (c *Client) RegisterGuest(ctx context.Context, username string) (string, error) {
	var resp tokenResponse
	err := c.request(ctx, http.MethodPost, "/security/register", "",
		credentialsRequest{Username: username, Password: ""}, &resp)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	return "Bearer " + resp.Token, nil
}

func (c *Client) ChangePassword(ctx context.Context, authToken, newPassword string) error {
	return c.request(ctx, http.MethodPut, "/user/change/password", authToken,
		changePasswordRequest{NewPassword: newPassword}, nil)
}

func (c *Client) ChangeUsername(ctx context.Context, authToken, newUsername string) error {
	return c.request(ctx, http.MethodPut, "/user/change/username", authToken,
		changeUsernameRequest{NewUsername: newUsername}, nil)
}
