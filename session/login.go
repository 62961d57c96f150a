package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
)

const (
	loginURL = "https://www.linkedin.com/login"
	feedURL  = "https://www.linkedin.com/feed/"
)

// ensureAuthenticated guarantees a logged-in LinkedIn session: saved
// cookies first, fresh credential login as fallback.
func ensureAuthenticated(browser *rod.Browser, email, password, cookiesPath string) error {
	jar := newCookieJar(cookiesPath)

	if err := jar.restore(browser); err == nil {
		fmt.Println("🍪 Cookies loaded")

		if cookiesStillValid(browser) {
			fmt.Println("✅ Authenticated using existing cookies")
			return nil
		}
		fmt.Println("⚠️ Cookies expired or invalid")
	}

	fmt.Println("🔐 Performing fresh login...")
	if err := login(browser, email, password); err != nil {
		return err
	}

	if err := jar.save(browser); err != nil {
		fmt.Printf("⚠️ Failed to save cookies: %v\n", err)
	} else {
		fmt.Println("🍪 Cookies saved")
	}
	return nil
}

// cookiesStillValid loads the feed and checks we aren't bounced to login.
func cookiesStillValid(browser *rod.Browser) bool {
	valid := false
	_ = rod.Try(func() {
		page := browser.MustPage(feedURL)
		defer page.MustClose()
		page.MustWaitLoad()
		valid = !strings.Contains(page.MustInfo().URL, "/login")
	})
	return valid
}

// login performs a credential login. Checkpoint pages (captcha, 2FA) cannot
// be solved unattended and surface as ErrAuth.
func login(browser *rod.Browser, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("linkedin credentials are missing: %w", ErrAuth)
	}

	err := rod.Try(func() {
		page := browser.MustPage(loginURL)
		page.MustWaitLoad()
		pause(2, 3)

		fmt.Println("⌨️ Typing email...")
		emailInput := page.MustElement(`input#username`)
		emailInput.MustWaitVisible().MustFocus()
		pauseMillis(300, 600)
		emailInput.MustInput(email)
		pause(1, 2)

		fmt.Println("⌨️ Typing password...")
		passwordInput := page.MustElement(`input#password`)
		passwordInput.MustWaitVisible().MustFocus()
		pauseMillis(300, 600)
		passwordInput.MustInput(password)
		pause(1, 2)

		page.MustElement(`button[type="submit"]`).MustClick()
		page.MustWaitLoad()
		pause(2, 4)

		currentURL := page.MustInfo().URL
		if strings.Contains(currentURL, "/checkpoint") {
			panic(fmt.Errorf("checkpoint detected (captcha or 2FA required)"))
		}
		if strings.Contains(currentURL, "/login") {
			panic(fmt.Errorf("still on login page, credentials rejected"))
		}
	})
	if err != nil {
		return fmt.Errorf("login failed: %v: %w", err, ErrAuth)
	}

	fmt.Println("✅ Logged in")
	time.Sleep(time.Second)
	return nil
}
