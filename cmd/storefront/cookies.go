package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/logger"
)

// cookieKey holds the backend cookies (session and cart_id) between runs,
// the way a browser keeps them between page loads.
const cookieKey = "sessionCookies"

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cookieJar interface {
	Cookies() []*http.Cookie
	SetCookies(cookies []*http.Cookie)
}

func restoreCookies(ctx context.Context, kv storage.Store, jar cookieJar, logg *logger.Logger) {
	raw, err := kv.Get(ctx, cookieKey)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "cookies.restore.failed")
		return
	}
	var saved []savedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "cookies.storage.corrupt")
		return
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(cookies)
}

func saveCookies(ctx context.Context, kv storage.Store, jar cookieJar) error {
	cookies := jar.Cookies()
	if len(cookies) == 0 {
		if err := kv.Delete(ctx, cookieKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return nil
	}
	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return kv.Set(ctx, cookieKey, string(raw))
}
