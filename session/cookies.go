package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// cookieJar reads and writes the session cookie file so later runs can skip
// the credential login.
type cookieJar struct {
	path string
}

func newCookieJar(path string) cookieJar {
	if path == "" {
		path = "cookies.json"
	}
	return cookieJar{path: path}
}

// save snapshots the browser's cookies to the jar file.
func (j cookieJar) save(browser *rod.Browser) error {
	cookies, err := browser.GetCookies()
	if err != nil {
		return fmt.Errorf("failed to read browser cookies: %w", err)
	}
	return j.write(cookies)
}

// restore installs previously saved cookies into the browser.
func (j cookieJar) restore(browser *rod.Browser) error {
	cookies, err := j.read()
	if err != nil {
		return err
	}
	if err := browser.SetCookies(cookieParams(cookies)); err != nil {
		return fmt.Errorf("failed to install cookies: %w", err)
	}
	return nil
}

func (j cookieJar) write(cookies []*proto.NetworkCookie) error {
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return nil
}

func (j cookieJar) read() ([]*proto.NetworkCookie, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}
	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("failed to decode cookie file %s: %w", j.path, err)
	}
	return cookies, nil
}

// cookieParams converts stored cookies into the form SetCookies accepts.
func cookieParams(cookies []*proto.NetworkCookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: c.SameSite,
		})
	}
	return params
}
