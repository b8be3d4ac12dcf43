package gateway

import (
	"context"
	"net/http"
)

// Admin resource verbs. Every call requires a bearer token; callers are
// expected to re-read the session immediately before each of these rather
// than holding on to a token.

// AdminList fetches the full server-side collection for a resource.
func AdminList[T any](ctx context.Context, c *Client, token, resource string) ([]T, error) {
	return DoJSON[[]T](ctx, c, Request{
		Method:   http.MethodGet,
		Endpoint: "/api/admin/" + resource,
		Token:    token,
	})
}

// AdminCreate creates one record and returns the server's copy.
func AdminCreate[T any](ctx context.Context, c *Client, token, resource string, payload any) (T, error) {
	return DoJSON[T](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/admin/" + resource,
		Body:     payload,
		Token:    token,
	})
}

// AdminUpdate patches one record and returns the server's copy.
func AdminUpdate[T any](ctx context.Context, c *Client, token, resource, id string, payload any) (T, error) {
	return DoJSON[T](ctx, c, Request{
		Method:   http.MethodPatch,
		Endpoint: "/api/admin/" + resource + "/" + id,
		Body:     payload,
		Token:    token,
	})
}

// AdminDelete removes one record.
func (c *Client) AdminDelete(ctx context.Context, token, resource, id string) error {
	_, err := c.Do(ctx, Request{
		Method:   http.MethodDelete,
		Endpoint: "/api/admin/" + resource + "/" + id,
		Token:    token,
	})
	return err
}

// CheckAdmin asks the backend whether the bearer of the token is an admin.
// Callers treat any error as "not admin"; this method only reports it.
func (c *Client) CheckAdmin(ctx context.Context, token string) (bool, error) {
	resp, err := DoJSON[struct {
		IsAdmin bool `json:"isAdmin"`
	}](ctx, c, Request{
		Method:   http.MethodGet,
		Endpoint: "/api/check-admin",
		Token:    token,
	})
	if err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}
