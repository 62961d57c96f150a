package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	messagingURL = "https://www.linkedin.com/messaging/"
	threadURL    = "https://www.linkedin.com/messaging/thread/%s/"

	pageTimeout = 20 * time.Second
)

// LinkedIn is a live LinkedIn messaging session driven through a browser.
type LinkedIn struct {
	browser *rod.Browser
	page    *rod.Page
	dryRun  bool
}

// Connect launches a browser and authenticates against LinkedIn, reusing
// cookies saved at cookiesPath when they are still valid. Authentication
// failures wrap ErrAuth.
func Connect(email, password, cookiesPath string, headless, dryRun bool) (*LinkedIn, error) {
	u, err := launcher.New().
		Leakless(false).
		Headless(headless).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	if err := ensureAuthenticated(browser, email, password, cookiesPath); err != nil {
		_ = browser.Close()
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &LinkedIn{browser: browser, page: page, dryRun: dryRun}, nil
}

// Close shuts the browser down.
func (l *LinkedIn) Close() {
	if l.browser != nil {
		_ = l.browser.Close()
	}
}

// ListUnreadConversations scans the messaging page for conversations with
// unread indicators and returns their thread identifiers, newest first.
func (l *LinkedIn) ListUnreadConversations(ctx context.Context) ([]string, error) {
	fmt.Println("🔍 Checking for unread conversations...")

	page := l.page.Context(ctx).Timeout(pageTimeout)
	defer page.CancelTimeout()

	if err := page.Navigate(messagingURL); err != nil {
		return nil, fmt.Errorf("failed to open messaging: %w", err)
	}
	if err := page.WaitStable(time.Second); err != nil {
		fmt.Println("⚠️ Page stability wait timed out, continuing...")
	}
	pause(2, 4)

	if err := l.checkSessionAlive(page); err != nil {
		return nil, err
	}

	var ids []string
	err := rod.Try(func() {
		result := page.MustEval(`() => {
			const ids = [];
			const cards = document.querySelectorAll(
				'li.msg-conversation-listitem, .msg-conversations-container__convo-item'
			);
			for (const card of cards) {
				const unread = card.querySelector('.msg-conversation-card__unread-count') ||
					card.querySelector('.notification-badge--show') ||
					card.classList.contains('msg-conversation-listitem--unread');
				if (!unread) continue;

				const link = card.querySelector('a[href*="/messaging/thread/"]');
				if (!link) continue;
				const match = link.href.match(/\/messaging\/thread\/([^/]+)/);
				if (match) ids.push(match[1]);
			}
			return ids;
		}`)
		for _, v := range result.Arr() {
			ids = append(ids, v.Str())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversation list: %w", err)
	}

	fmt.Printf("📬 Found %d unread conversation(s)\n", len(ids))
	return ids, nil
}

// FetchLatestMessage opens a conversation and extracts the most recent
// inbound message and its sender.
func (l *LinkedIn) FetchLatestMessage(ctx context.Context, conversationID string) (Message, error) {
	page := l.page.Context(ctx).Timeout(pageTimeout)
	defer page.CancelTimeout()

	if err := l.openThread(page, conversationID); err != nil {
		return Message{}, err
	}

	msg := Message{ConversationID: conversationID, FetchedAt: time.Now()}
	err := rod.Try(func() {
		result := page.MustEval(`() => {
			const bodies = document.querySelectorAll('.msg-s-event-listitem__body');
			const text = bodies.length > 0 ? bodies[bodies.length - 1].innerText.trim() : '';

			let sender = '';
			const names = document.querySelectorAll('.msg-s-message-group__name');
			if (names.length > 0) {
				sender = names[names.length - 1].innerText.trim();
			}
			if (!sender) {
				const title = document.querySelector('#thread-detail-jump-target, .msg-entity-lockup__entity-title');
				if (title) sender = title.innerText.trim();
			}

			return { text: text, sender: sender };
		}`)
		msg.Text = result.Get("text").Str()
		msg.SenderName = result.Get("sender").Str()
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to read conversation %s: %w", conversationID, err)
	}

	if msg.SenderName == "" {
		msg.SenderName = "there"
	}
	return msg, nil
}

// SendReply types text into the conversation's composer and clicks send.
func (l *LinkedIn) SendReply(ctx context.Context, conversationID, text string) error {
	if l.dryRun {
		fmt.Printf("🧪 [DRY RUN] Would send to %s: %s\n", conversationID, truncate(text, 100))
		return nil
	}

	page := l.page.Context(ctx).Timeout(pageTimeout)
	defer page.CancelTimeout()

	if err := l.openThread(page, conversationID); err != nil {
		return err
	}

	if err := typeIntoComposer(page, text); err != nil {
		return fmt.Errorf("%v: %w", err, ErrSend)
	}
	pauseMillis(400, 900)

	if err := clickSend(page); err != nil {
		return fmt.Errorf("%v: %w", err, ErrSend)
	}
	pause(1, 2)

	fmt.Println("✅ Reply sent")
	return nil
}

// MarkRead opens a conversation without replying; LinkedIn clears the
// unread badge on open.
func (l *LinkedIn) MarkRead(ctx context.Context, conversationID string) error {
	page := l.page.Context(ctx).Timeout(pageTimeout)
	defer page.CancelTimeout()

	if err := l.openThread(page, conversationID); err != nil {
		return err
	}
	pause(1, 2)
	return nil
}

// openThread navigates to a conversation and verifies the session is still
// authenticated.
func (l *LinkedIn) openThread(page *rod.Page, conversationID string) error {
	url := fmt.Sprintf(threadURL, conversationID)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to open conversation %s: %w", conversationID, err)
	}
	if err := page.WaitStable(time.Second); err != nil {
		fmt.Println("⚠️ Page stability wait timed out, continuing...")
	}
	pause(1, 3)

	return l.checkSessionAlive(page)
}

// checkSessionAlive detects a lost login by URL. LinkedIn bounces expired
// sessions to /login or /checkpoint.
func (l *LinkedIn) checkSessionAlive(page *rod.Page) error {
	info, err := page.Info()
	if err != nil {
		return fmt.Errorf("failed to read page info: %w", err)
	}
	if strings.Contains(info.URL, "/login") || strings.Contains(info.URL, "/checkpoint") {
		return fmt.Errorf("session redirected to %s: %w", info.URL, ErrAuth)
	}
	return nil
}

// typeIntoComposer fills the message composer.
func typeIntoComposer(page *rod.Page, text string) error {
	var ok bool
	err := rod.Try(func() {
		result := page.MustEval(`(content) => {
			const selectors = [
				'div.msg-form__contenteditable[contenteditable="true"]',
				'div[role="textbox"][contenteditable="true"]',
				'textarea.msg-form__textarea',
			];
			for (const selector of selectors) {
				const input = document.querySelector(selector);
				if (!input) continue;
				input.focus();
				if (input.tagName === 'TEXTAREA') {
					input.value = content;
				} else {
					input.innerHTML = '';
					const p = document.createElement('p');
					p.textContent = content;
					input.appendChild(p);
				}
				input.dispatchEvent(new InputEvent('input', { bubbles: true }));
				return true;
			}
			return false;
		}`, text)
		ok = result.Bool()
	})
	if err != nil {
		return fmt.Errorf("composer eval failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("message composer not found")
	}
	return nil
}

// clickSend presses the composer's send button.
func clickSend(page *rod.Page) error {
	var ok bool
	err := rod.Try(func() {
		result := page.MustEval(`() => {
			const btn = document.querySelector('button.msg-form__send-button') ||
				document.querySelector('button[type="submit"].msg-form__send-btn');
			if (btn && !btn.disabled) {
				btn.click();
				return true;
			}
			return false;
		}`)
		ok = result.Bool()
	})
	if err != nil {
		return fmt.Errorf("send button eval failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("send button not found or disabled")
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
