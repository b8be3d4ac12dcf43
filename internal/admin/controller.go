// Package admin implements the back-office resource controller pattern:
// load a collection, mutate it through the gateway, and keep the local copy
// in step with what a reload would return. One generic controller covers
// every resource kind the dashboard manages.
package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows a dismissible notification. Failures never crash the
// dashboard; they surface here and the action simply did not happen.
type Notifier interface {
	Notify(level Level, message string)
}

// SessionSource supplies the live session; controllers re-read it before
// every call instead of holding a token.
type SessionSource interface {
	CurrentSession(ctx context.Context) *models.Session
}

// ErrNotAuthenticated rejects mutations attempted without a session. Loads
// are different: a missing session during load is the normal pre-auth
// render and stays silent.
var ErrNotAuthenticated = fmt.Errorf("not authenticated")

// Controller manages one resource collection. The type parameter is the
// resource record; idOf extracts its server id.
type Controller[T any] struct {
	resource string
	idOf     func(T) string
	sessions SessionSource
	notify   Notifier

	list   func(ctx context.Context, token string) ([]T, error)
	create func(ctx context.Context, token string, payload any) (T, error)
	update func(ctx context.Context, token, id string, payload any) (T, error)
	remove func(ctx context.Context, token, id string) error

	items []T
}

// NewController wires a controller to the gateway client for one admin
// resource path.
func NewController[T any](c *gateway.Client, resource string, idOf func(T) string, sessions SessionSource, notify Notifier) *Controller[T] {
	return &Controller[T]{
		resource: resource,
		idOf:     idOf,
		sessions: sessions,
		notify:   notify,
		list: func(ctx context.Context, token string) ([]T, error) {
			return gateway.AdminList[T](ctx, c, token, resource)
		},
		create: func(ctx context.Context, token string, payload any) (T, error) {
			return gateway.AdminCreate[T](ctx, c, token, resource, payload)
		},
		update: func(ctx context.Context, token, id string, payload any) (T, error) {
			return gateway.AdminUpdate[T](ctx, c, token, resource, id, payload)
		},
		remove: func(ctx context.Context, token, id string) error {
			return c.AdminDelete(ctx, token, resource, id)
		},
	}
}

// Items returns a copy of the local collection.
func (c *Controller[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Load replaces the local collection with the server's current collection.
// No session means "not yet authenticated" — a silent no-op, not an error.
func (c *Controller[T]) Load(ctx context.Context) error {
	sess := c.sessions.CurrentSession(ctx)
	if sess == nil {
		return nil
	}

	items, err := c.list(ctx, sess.AccessToken)
	if err != nil {
		log.Printf("[admin] %s: load failed: %v", c.resource, err)
		c.notify.Notify(LevelError, err.Error())
		return err
	}

	c.items = items
	return nil
}

// Create performs one round trip and appends the server's copy on success.
// The local collection is untouched on failure.
func (c *Controller[T]) Create(ctx context.Context, payload any) error {
	sess := c.sessions.CurrentSession(ctx)
	if sess == nil {
		return ErrNotAuthenticated
	}

	created, err := c.create(ctx, sess.AccessToken, payload)
	if err != nil {
		log.Printf("[admin] %s: create failed: %v", c.resource, err)
		c.notify.Notify(LevelError, err.Error())
		return err
	}

	c.items = append(c.items, created)
	c.notify.Notify(LevelSuccess, "created")
	return nil
}

// Update performs one round trip and swaps in the server's copy on success.
func (c *Controller[T]) Update(ctx context.Context, id string, payload any) error {
	sess := c.sessions.CurrentSession(ctx)
	if sess == nil {
		return ErrNotAuthenticated
	}

	updated, err := c.update(ctx, sess.AccessToken, id, payload)
	if err != nil {
		log.Printf("[admin] %s: update failed: %v", c.resource, err)
		c.notify.Notify(LevelError, err.Error())
		return err
	}

	for i, item := range c.items {
		if c.idOf(item) == id {
			c.items[i] = updated
			break
		}
	}
	c.notify.Notify(LevelSuccess, "saved")
	return nil
}

// Delete performs one round trip and drops the record locally on success.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	sess := c.sessions.CurrentSession(ctx)
	if sess == nil {
		return ErrNotAuthenticated
	}

	if err := c.remove(ctx, sess.AccessToken, id); err != nil {
		log.Printf("[admin] %s: delete failed: %v", c.resource, err)
		c.notify.Notify(LevelError, err.Error())
		return err
	}

	kept := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.notify.Notify(LevelSuccess, "deleted")
	return nil
}

// Toggle is the one optimistic mutation (publish/unpublish, approve/reject):
// the local record flips immediately, the server call follows, and a failed
// call reverts the flip so the UI cannot drift from the server.
func (c *Controller[T]) Toggle(ctx context.Context, id string, flip func(*T), payload any) error {
	sess := c.sessions.CurrentSession(ctx)
	if sess == nil {
		return ErrNotAuthenticated
	}

	index := -1
	for i, item := range c.items {
		if c.idOf(item) == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%s %q not found", c.resource, id)
	}

	prior := c.items[index]
	flip(&c.items[index])

	if _, err := c.update(ctx, sess.AccessToken, id, payload); err != nil {
		log.Printf("[admin] %s: toggle failed, reverting: %v", c.resource, err)
		c.items[index] = prior
		c.notify.Notify(LevelError, err.Error())
		return err
	}
	return nil
}
