package session

import (
	"net/http"
	"time"
)

type snapshot struct {
	Cookies []storedCookie `json:"cookies"`
}

type storedCookie struct {
	URL      string     `json:"url"`
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Domain   string     `json:"domain,omitempty"`
	Path     string     `json:"path,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
	Secure   bool       `json:"secure,omitempty"`
	HttpOnly bool       `json:"httpOnly,omitempty"`
}

func fromHTTP(origin string, c *http.Cookie) storedCookie {
	sc := storedCookie{
		URL:      origin,
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	switch {
	case c.MaxAge > 0:
		exp := time.Now().Add(time.Duration(c.MaxAge) * time.Second).UTC()
		sc.Expires = &exp
	case !c.Expires.IsZero():
		exp := c.Expires.UTC()
		sc.Expires = &exp
	}
	return sc
}

func (c storedCookie) toHTTP() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if c.Expires != nil {
		hc.Expires = *c.Expires
	}
	return hc
}
