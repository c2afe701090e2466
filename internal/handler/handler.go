package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/luckyComet55/atm-tg-bot/internal/atm"
	"github.com/luckyComet55/atm-tg-bot/internal/middleware"
	repo "github.com/luckyComet55/atm-tg-bot/internal/repository"
	"github.com/luckyComet55/atm-tg-bot/internal/session"
)

// KeyCallbackPrefix prefixes the callback data of keypad buttons.
const KeyCallbackPrefix = "key:"

const helpText = "Swipe a card with /swipe <pin> (digits 1-4), then use the keypad.\n" +
	"/cancel returns the card, /cash shows the cash left."

// Messenger is the part of the Bot API the handler talks to. *bot.Bot implements it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

type MessageHandler struct {
	logger             *slog.Logger
	session            *session.Session
	operatorRepository repo.OperatorRepository
}

func NewMessageHandler(s *session.Session, operatorRepo repo.OperatorRepository, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		logger:             logger,
		session:            s,
		operatorRepository: operatorRepo,
	}
}

func Keypad() *models.InlineKeyboardMarkup {
	button := func(k atm.Key) models.InlineKeyboardButton {
		return models.InlineKeyboardButton{Text: k.String(), CallbackData: KeyCallbackPrefix + k.String()}
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{button(atm.KeyOne), button(atm.KeyTwo)},
			{button(atm.KeyThree), button(atm.KeyFour)},
			{button(atm.KeyEnter)},
		},
	}
}

func (mh *MessageHandler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Start(ctx, b, update)
}

func (mh *MessageHandler) HandleSwipe(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Swipe(ctx, b, update)
}

func (mh *MessageHandler) HandleKey(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Key(ctx, b, update)
}

func (mh *MessageHandler) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Cancel(ctx, b, update)
}

func (mh *MessageHandler) HandleCash(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Cash(ctx, b, update)
}

func (mh *MessageHandler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	mh.Default(ctx, b, update)
}

func (mh *MessageHandler) Start(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok {
		return
	}
	mh.operatorRepository.AddOperator(sender.UserID, sender.ChatID)

	mh.reply(ctx, m, sender.ChatID, fmt.Sprintf("ATM terminal. State: %s.\n%s", mh.session.State(), helpText), Keypad())
}

func (mh *MessageHandler) Swipe(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok || update.Message == nil {
		return
	}
	mh.operatorRepository.AddOperator(sender.UserID, sender.ChatID)

	fields := strings.Fields(update.Message.Text)
	if len(fields) != 2 {
		mh.reply(ctx, m, sender.ChatID, "Usage: /swipe <pin>", nil)
		return
	}
	pin, err := atm.ParseDigits(fields[1])
	if err != nil || len(pin) == 0 {
		mh.reply(ctx, m, sender.ChatID, "A pin is made of the digits 1 to 4.", nil)
		return
	}

	if err := mh.operatorRepository.Acquire(sender.UserID); err != nil {
		mh.logger.Debug(err.Error())
		mh.reply(ctx, m, sender.ChatID, "The terminal is in use by another operator.", nil)
		return
	}

	res := mh.session.Swipe(pin)
	mh.settle(sender.UserID, res)
	mh.reply(ctx, m, sender.ChatID, res.Message(), Keypad())
}

func (mh *MessageHandler) Key(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok || update.CallbackQuery == nil {
		return
	}
	query := update.CallbackQuery

	key, err := atm.ParseKey(strings.TrimPrefix(query.Data, KeyCallbackPrefix))
	if err != nil {
		mh.logger.Warn("unknown keypad button", "data", query.Data)
		mh.answer(ctx, m, query.ID, "")
		return
	}

	if !mh.operatorRepository.CanUse(sender.UserID) {
		mh.answer(ctx, m, query.ID, "The terminal is in use by another operator.")
		return
	}

	res := mh.session.Press(key)
	mh.settle(sender.UserID, res)

	if res.Outcome == session.OutcomeKeyAccepted {
		mh.answer(ctx, m, query.ID, res.Message())
		return
	}
	mh.answer(ctx, m, query.ID, "")
	mh.reply(ctx, m, sender.ChatID, res.Message(), Keypad())
}

func (mh *MessageHandler) Cancel(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok {
		return
	}
	if !mh.operatorRepository.CanUse(sender.UserID) {
		mh.reply(ctx, m, sender.ChatID, "The terminal is in use by another operator.", nil)
		return
	}

	res := mh.session.Cancel()
	mh.settle(sender.UserID, res)
	mh.reply(ctx, m, sender.ChatID, res.Message(), nil)
}

func (mh *MessageHandler) Cash(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok {
		return
	}
	mh.reply(ctx, m, sender.ChatID, fmt.Sprintf("Cash inside: %d", mh.session.Cash()), nil)
}

func (mh *MessageHandler) Default(ctx context.Context, m Messenger, update *models.Update) {
	sender, ok := middleware.SenderOf(update)
	if !ok {
		return
	}
	if update.CallbackQuery != nil {
		mh.answer(ctx, m, update.CallbackQuery.ID, "")
	}
	mh.reply(ctx, m, sender.ChatID, helpText, nil)
}

// NotifyTimeout tells the operator holding the terminal that the session expired.
func (mh *MessageHandler) NotifyTimeout(ctx context.Context, m Messenger, res session.Result) {
	holder, ok := mh.operatorRepository.Holder()
	if !ok {
		return
	}
	mh.settle(holder, res)

	chatID, ok := mh.operatorRepository.GetOperatorChat(holder)
	if !ok {
		return
	}
	mh.reply(ctx, m, chatID, res.Message(), nil)
}

// settle frees the terminal once the session is back to Waiting.
func (mh *MessageHandler) settle(operatorID int64, res session.Result) {
	if res.To.Kind() != atm.AuthWaiting {
		return
	}
	if err := mh.operatorRepository.Release(operatorID); err != nil && !errors.Is(err, repo.ErrTerminalBusy) {
		mh.logger.Error(err.Error())
	}
}

func (mh *MessageHandler) reply(ctx context.Context, m Messenger, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := m.SendMessage(ctx, params); err != nil {
		mh.logger.Error(err.Error())
	}
}

func (mh *MessageHandler) answer(ctx context.Context, m Messenger, queryID, text string) {
	if _, err := m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	}); err != nil {
		mh.logger.Error(err.Error())
	}
}
