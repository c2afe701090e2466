// Package session drives one ATM: it owns the keystroke register and the cash,
// turns raw key presses into state machine actions and settles withdrawals.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/luckyComet55/atm-tg-bot/internal/atm"
	"github.com/luckyComet55/atm-tg-bot/internal/pinhash"
	"github.com/luckyComet55/atm-tg-bot/pkg/fsm"
)

// MaxKeystrokes bounds the register; further digits are ignored until Enter.
const MaxKeystrokes = 16

type Config struct {
	Cash        uint64
	IdleTimeout time.Duration
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

type Session struct {
	mu           sync.Mutex
	machine      *fsm.FSM[atm.Auth, atm.Action]
	register     []atm.Key
	cash         uint64
	idleTimeout  time.Duration
	lastActivity time.Time
	now          func() time.Time
	logger       *slog.Logger
}

func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		machine:     atm.NewFSM(),
		register:    make([]atm.Key, 0, MaxKeystrokes),
		cash:        cfg.Cash,
		idleTimeout: cfg.IdleTimeout,
		now:         time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActivity = s.now()

	s.machine.
		OnTransition(func(ctx *fsm.Context[atm.Auth, atm.Action]) {
			s.logger.Debug("transition", "from", ctx.From, "to", ctx.To, "action", ctx.Transition)
		}).
		OnEnter(atm.Waiting(), func(ctx *fsm.Context[atm.Auth, atm.Action]) {
			s.clearRegister()
		})

	return s
}

func (s *Session) State() atm.Auth {
	return s.machine.GetCurrent()
}

func (s *Session) Cash() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cash
}

// Pending returns how many keys are buffered since the last Enter.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.register)
}

// Swipe inserts a card whose pin is the given key sequence. A pin that could never be
// keyed in is rejected without touching the machine.
func (s *Session) Swipe(pin []atm.Key) Result {
	if len(pin) == 0 || slices.ContainsFunc(pin, isNotDigit) {
		current := s.State()
		s.logger.Warn("unreadable card", "error", ErrInvalidPin)
		return Result{From: current, To: current, Outcome: OutcomeInvalidCard, Err: ErrInvalidPin}
	}
	return s.SwipeHash(pinhash.Sequence(pin))
}

func isNotDigit(k atm.Key) bool {
	return !k.IsDigit()
}

func (s *Session) SwipeHash(pinHash uint64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	s.clearRegister()

	from, to := s.machine.Trigger(atm.SwipeCard(pinHash))
	res := Result{From: from, To: to, Outcome: OutcomeCardAccepted}
	if to.Kind() != atm.AuthAuthenticating {
		res.Outcome = OutcomeReset
	}
	s.logger.Info("card swiped", "from", from, "to", to, "outcome", res.Outcome)
	return res
}

func (s *Session) Press(k atm.Key) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()

	current := s.machine.GetCurrent()
	switch {
	case current.Kind() == atm.AuthWaiting:
		from, to := s.machine.Trigger(atm.PressKey(k))
		return Result{From: from, To: to, Outcome: OutcomeIgnored}
	case k.IsDigit():
		return s.pressDigit(current, k)
	case k == atm.KeyEnter && current.Kind() == atm.AuthAuthenticating:
		return s.submitPin()
	case k == atm.KeyEnter && current.Kind() == atm.AuthAuthenticated:
		return s.withdraw()
	}

	from, to := s.machine.Trigger(atm.PressKey(k))
	s.logger.Warn("unexpected key, session reset", "key", k, "from", from)
	return Result{From: from, To: to, Outcome: OutcomeReset}
}

// Cancel returns the card and drops whatever was keyed in.
func (s *Session) Cancel() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	from := s.machine.GetCurrent()
	s.machine.Reset()
	s.clearRegister()
	return Result{From: from, To: atm.Waiting(), Outcome: OutcomeCancelled}
}

// ExpireIdle resets an active session that has seen no input for the idle timeout.
// It reports whether a reset happened.
func (s *Session) ExpireIdle(now time.Time) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.machine.GetCurrent()
	if s.idleTimeout <= 0 || current.Kind() == atm.AuthWaiting {
		return Result{}, false
	}
	if now.Sub(s.lastActivity) < s.idleTimeout {
		return Result{}, false
	}

	s.machine.Reset()
	s.clearRegister()
	s.logger.Info("session timed out", "from", current, "idle", now.Sub(s.lastActivity))
	return Result{From: current, To: atm.Waiting(), Outcome: OutcomeTimedOut}, true
}

// WatchIdle checks for idle expiry every interval until ctx is done. notify, if set,
// receives every expiry.
func (s *Session) WatchIdle(ctx context.Context, interval time.Duration, notify func(Result)) {
	if s.idleTimeout <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if res, ok := s.ExpireIdle(s.now()); ok && notify != nil {
				notify(res)
			}
		}
	}
}

func (s *Session) pressDigit(current atm.Auth, k atm.Key) Result {
	if len(s.register) >= MaxKeystrokes {
		return Result{From: current, To: current, Outcome: OutcomeIgnored}
	}
	s.register = append(s.register, k)
	from, to := s.machine.Trigger(atm.PressKey(k))
	return Result{From: from, To: to, Outcome: OutcomeKeyAccepted}
}

func (s *Session) submitPin() Result {
	submitted := pinhash.Sequence(s.register)
	s.clearRegister()

	from, to := s.machine.Trigger(atm.SubmitPin(submitted))
	if to == atm.Authenticated() {
		s.logger.Info("pin accepted")
		return Result{From: from, To: to, Outcome: OutcomePinAccepted}
	}
	s.logger.Warn("pin rejected, card returned")
	return Result{From: from, To: to, Outcome: OutcomePinRejected}
}

// withdraw settles the amount in the register. Cash is taken before the machine
// returns to Waiting; a rejected amount leaves it untouched.
func (s *Session) withdraw() Result {
	amount, err := s.amount()
	s.clearRegister()

	res := Result{Amount: amount, Err: err}
	switch {
	case errors.Is(err, ErrInvalidAmount):
		res.Outcome = OutcomeInvalidAmount
	case errors.Is(err, ErrInsufficientCash):
		res.Outcome = OutcomeInsufficientCash
	default:
		s.cash -= amount
		res.Outcome = OutcomeDispensed
	}

	res.From, res.To = s.machine.Trigger(atm.PressKey(atm.KeyEnter))

	if err != nil {
		s.logger.Warn("withdrawal rejected", "amount", amount, "cash", s.cash, "error", err)
	} else {
		s.logger.Info("cash dispensed", "amount", amount, "cash", s.cash)
	}
	return res
}

// amount reads the register as a decimal number.
func (s *Session) amount() (uint64, error) {
	var amount uint64
	for _, k := range s.register {
		amount = amount*10 + uint64(k.Digit())
	}
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if amount > s.cash {
		return amount, ErrInsufficientCash
	}
	return amount, nil
}

func (s *Session) touch() {
	s.lastActivity = s.now()
}

func (s *Session) clearRegister() {
	s.register = s.register[:0]
}
