package logger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/luckyComet55/atm-tg-bot/internal/config"
)

// New builds the process logger: human readable debug output in dev, JSON at info in prod.
func New(env string, w io.Writer) (*slog.Logger, error) {
	var logger *slog.Logger
	switch env {
	case config.EnvDev:
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return nil, fmt.Errorf("incorrect env type: %s. possible values: dev, prod", env)
	}
	return logger, nil
}
