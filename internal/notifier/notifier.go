// Package notifier sends streaming-mode job alerts over Telegram and
// provides SeenCache, a persisted record of announced jobs with a TTL.
// NotifyMatch does not consult SeenCache, so a posting seen again on a
// later run is announced again.
package notifier

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oclaw/coopmatch/internal/filter"
	"github.com/oclaw/coopmatch/internal/models"
)

// Notifier sends job-match alerts. A nil *Notifier is valid and every
// method becomes a no-op, so the pipeline can run with Telegram disabled
// without branching at every call site.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New builds a Notifier, or returns (nil, nil) if token is empty —
// the caller's signal that Telegram notifications are disabled.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notifier: initializing telegram bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

// NotifyMatch sends one job-match alert, annotated with the decision the
// Filter Engine reached for it.
func (n *Notifier) NotifyMatch(job models.Job, mr models.MatchResult, decision filter.Decision) error {
	if n == nil {
		return nil
	}

	msg := fmt.Sprintf("🏢 *%s*\n", markdownEscaper.Replace(job.Company))
	msg += fmt.Sprintf("📌 %s\n", markdownEscaper.Replace(job.Title))
	msg += fmt.Sprintf("🎯 Fit score: %s\n", markdownEscaper.Replace(fmt.Sprintf("%.1f", mr.FitScore)))
	if job.Location != "" {
		msg += fmt.Sprintf("📍 %s\n", markdownEscaper.Replace(job.Location))
	}
	if len(mr.MatchedTechnologies) > 0 {
		msg += fmt.Sprintf("✅ %s\n", markdownEscaper.Replace(strings.Join(mr.MatchedTechnologies, ", ")))
	}
	if decision == filter.DecisionAutosaveFolder {
		msg += "💾 Auto\\-saved to folder\n"
	}

	out := tgbotapi.NewMessage(n.chatID, msg)
	out.ParseMode = "MarkdownV2"

	_, err := n.api.Send(out)
	if err != nil {
		return fmt.Errorf("notifier: sending job alert: %w", err)
	}
	return nil
}

// NotifyError reports a fatal pipeline error to the operator.
func (n *Notifier) NotifyError(context string, err error) error {
	if n == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("⚠️ %s: %v", markdownEscaper.Replace(context), err))
	_, sendErr := n.api.Send(msg)
	return sendErr
}
