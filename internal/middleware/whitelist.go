package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender identifies who an update came from and where to reply.
type Sender struct {
	UserID   int64
	ChatID   int64
	Username string
}

// SenderOf extracts the sender of a message or a keypad press.
func SenderOf(update *models.Update) (Sender, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return Sender{
			UserID:   update.Message.From.ID,
			ChatID:   update.Message.Chat.ID,
			Username: update.Message.From.Username,
		}, true
	case update.CallbackQuery != nil:
		return Sender{
			UserID:   update.CallbackQuery.From.ID,
			ChatID:   update.CallbackQuery.From.ID,
			Username: update.CallbackQuery.From.Username,
		}, true
	}
	return Sender{}, false
}

type WhitelistMiddleware struct {
	logger         *slog.Logger
	userAllowedIDs []int64
}

func NewWhitelistMiddleware(userAllowedIDs []int64, logger *slog.Logger) *WhitelistMiddleware {
	return &WhitelistMiddleware{
		userAllowedIDs: userAllowedIDs,
		logger:         logger,
	}
}

func (wm *WhitelistMiddleware) IsUserAllowed(userID int64) bool {
	return slices.Contains(wm.userAllowedIDs, userID)
}

// WithWhitelist only lets operators listed in the whitelist reach the terminal.
func WithWhitelist(whitelist *WhitelistMiddleware, handler bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		sender, ok := SenderOf(update)
		if !ok {
			handler(ctx, b, update)
			return
		}
		if !whitelist.IsUserAllowed(sender.UserID) {
			whitelist.logger.Warn(fmt.Sprintf("user %s (ID %d) is not in the whitelist", sender.Username, sender.UserID))

			_, err := b.SendMessage(ctx, &bot.SendMessageParams{
				Text:   "You are not allowed to use this terminal",
				ChatID: sender.ChatID,
			})
			if err != nil {
				whitelist.logger.Error(err.Error())
			}

			return
		}

		handler(ctx, b, update)
	}
}
