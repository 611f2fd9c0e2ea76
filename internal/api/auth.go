package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
)

var errNoToken = errors.New("backend returned no token")

// Me resolves the user behind the session's credential.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, c.url(nil, "auth", "me"), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Register(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	return c.authenticate(ctx, "register", creds)
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	creds.Name = ""
	return c.authenticate(ctx, "login", creds)
}

func (c *Client) authenticate(ctx context.Context, action string, creds model.Credentials) (*model.AuthResult, error) {
	var res model.AuthResult
	if err := c.do(ctx, http.MethodPost, c.url(nil, "auth", action), creds, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errNoToken
	}
	return &res, nil
}
