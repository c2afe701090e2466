package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"

	"github.com/luckyComet55/atm-tg-bot/internal/config"
	"github.com/luckyComet55/atm-tg-bot/internal/console"
	"github.com/luckyComet55/atm-tg-bot/internal/handler"
	"github.com/luckyComet55/atm-tg-bot/internal/logger"
	"github.com/luckyComet55/atm-tg-bot/internal/middleware"
	"github.com/luckyComet55/atm-tg-bot/internal/repository"
	"github.com/luckyComet55/atm-tg-bot/internal/session"
)

const idleCheckInterval = time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := config.LoadDotenv(); err != nil {
		log.Println("Warning! No .env file found")
	}

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	c, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// stdout belongs to the terminal front-end.
	l, err := logger.New(c.Env, os.Stderr)
	if err != nil {
		return err
	}

	s := session.New(session.Config{
		Cash:        c.Cash,
		IdleTimeout: c.IdleTimeout,
	}, session.WithLogger(l.With("component", "session")))

	l.Info("starting atm", "frontend", c.Frontend, "cash", c.Cash, "idle_timeout", c.IdleTimeout)

	switch c.Frontend {
	case config.FrontendTelegram:
		return runTelegram(ctx, c, s, l)
	default:
		return runTerminal(ctx, s, l)
	}
}

func runTerminal(ctx context.Context, s *session.Session, l *slog.Logger) error {
	term := console.New(s, os.Stdin, os.Stdout, l.With("component", "console"))

	go s.WatchIdle(ctx, idleCheckInterval, term.Notify)

	return term.Run(ctx)
}

func runTelegram(ctx context.Context, c config.AppConfig, s *session.Session, l *slog.Logger) error {
	operatorRepo := repository.NewOperatorRepository()

	handlerWrapper := handler.NewMessageHandler(s, operatorRepo, l.With("component", "handlerWrapper"))
	whitelistMiddleware := middleware.NewWhitelistMiddleware(c.AuthorizedUsers, l.With("component", "whitelistMiddleware"))

	opts := []bot.Option{
		bot.WithDefaultHandler(middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleUpdate)),
		bot.WithMessageTextHandler("/start", bot.MatchTypeExact, middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleStart)),
		bot.WithMessageTextHandler("/swipe", bot.MatchTypePrefix, middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleSwipe)),
		bot.WithMessageTextHandler("/cancel", bot.MatchTypeExact, middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleCancel)),
		bot.WithMessageTextHandler("/cash", bot.MatchTypeExact, middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleCash)),
		bot.WithCallbackQueryDataHandler(handler.KeyCallbackPrefix, bot.MatchTypePrefix, middleware.WithWhitelist(whitelistMiddleware, handlerWrapper.HandleKey)),
	}
	if c.Env == config.EnvDev {
		opts = append(opts, bot.WithDebug())
	}

	b, err := bot.New(c.BotApiKey, opts...)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	go s.WatchIdle(ctx, idleCheckInterval, func(res session.Result) {
		handlerWrapper.NotifyTimeout(ctx, b, res)
	})

	b.Start(ctx)
	return nil
}
