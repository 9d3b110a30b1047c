package cmd

import (
	"fmt"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/portal"
)

// openPortalSession launches a browser session and, when
// portal_cookies_path is configured, replays an exported cookie jar into
// it so the session starts pre-authenticated and Login's form submission
// becomes a no-op.
func openPortalSession(cfg *config.Config) (*portal.PlaywrightSession, error) {
	if cfg.PortalBaseURL == "" || cfg.PortalUsername == "" || cfg.PortalPassword == "" {
		return nil, fmt.Errorf("portal_base_url, portal_username and portal_password must all be set")
	}
	session, err := portal.NewPlaywrightSession(cfg.PortalBaseURL, cfg.PortalUsername, cfg.PortalPassword, cfg.PortalHeadless)
	if err != nil {
		return nil, err
	}
	if cfg.PortalCookiesPath != "" {
		if err := session.LoadCookiesIntoSession(cfg.PortalCookiesPath); err != nil {
			session.Close()
			return nil, fmt.Errorf("loading portal cookies: %w", err)
		}
	}
	return session, nil
}
