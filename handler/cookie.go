package handler

import (
	"net/http"
	"time"
)

const RefreshCookieName = "refreshtoken"

// CookieSettings controls the refresh token cookie attributes.
type CookieSettings struct {
	Secure bool
}

func (c CookieSettings) setRefresh(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

func (c CookieSettings) clearRefresh(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}
