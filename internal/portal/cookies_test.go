package portal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookieFixture(t *testing.T, cookies []cookie) string {
	t.Helper()
	data, err := json.Marshal(cookies)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadCookiesParsesJSONExport(t *testing.T) {
	path := writeCookieFixture(t, []cookie{
		{Name: "session", Value: "abc123", Domain: "coop-portal.example.edu", Path: "/", Secure: true, SameSite: "Lax"},
	})

	cookies, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
}

func TestLoadCookiesErrorsOnMissingFile(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestCookieToPlaywrightMapsSameSiteValues(t *testing.T) {
	c := cookie{Name: "a", Value: "b", SameSite: "Strict"}
	pw := c.toPlaywright()
	assert.Equal(t, playwright.SameSiteAttributeStrict, pw.SameSite)
}

func TestCookieToPlaywrightLeavesUnrecognizedSameSiteUnset(t *testing.T) {
	c := cookie{Name: "a", Value: "b", SameSite: "Unknown"}
	pw := c.toPlaywright()
	assert.Equal(t, "a", pw.Name)
	assert.Equal(t, "b", pw.Value)
	assert.Nil(t, pw.SameSite)
}
