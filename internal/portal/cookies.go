package portal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// cookie is the on-disk JSON representation of a session cookie,
// exported by a prior manual login and replayed to skip interactive
// authentication.
type cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies reads a JSON cookie export and converts it to Playwright's
// cookie type.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portal: reading cookies %q: %w", path, err)
	}

	var cookies []cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("portal: parsing cookies %q: %w", path, err)
	}

	out := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		out[i] = c.toPlaywright()
	}
	return out, nil
}

func (c cookie) toPlaywright() playwright.OptionalCookie {
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}
	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}
	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}
	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}
	switch c.SameSite {
	case "Lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}
	return pwCookie
}

// LoadCookiesIntoSession replays a cookie export into an active session,
// letting a prior manual login skip the interactive form.
func (s *PlaywrightSession) LoadCookiesIntoSession(path string) error {
	cookies, err := LoadCookies(path)
	if err != nil {
		return err
	}
	if err := s.ctx.AddCookies(cookies); err != nil {
		return fmt.Errorf("portal: applying cookies: %w", err)
	}
	s.loggedIn = true
	return nil
}
