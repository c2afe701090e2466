package session

import (
	"errors"
	"fmt"

	"github.com/luckyComet55/atm-tg-bot/internal/atm"
)

var (
	ErrInsufficientCash = errors.New("not enough cash in the machine")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidPin       = errors.New("pin must be one or more digit keys")
)

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeIgnored
	OutcomeCardAccepted
	OutcomeInvalidCard
	OutcomeKeyAccepted
	OutcomePinAccepted
	OutcomePinRejected
	OutcomeDispensed
	OutcomeInsufficientCash
	OutcomeInvalidAmount
	OutcomeReset
	OutcomeCancelled
	OutcomeTimedOut
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:             "none",
	OutcomeIgnored:          "ignored",
	OutcomeCardAccepted:     "card accepted",
	OutcomeInvalidCard:      "invalid card",
	OutcomeKeyAccepted:      "key accepted",
	OutcomePinAccepted:      "pin accepted",
	OutcomePinRejected:      "pin rejected",
	OutcomeDispensed:        "dispensed",
	OutcomeInsufficientCash: "insufficient cash",
	OutcomeInvalidAmount:    "invalid amount",
	OutcomeReset:            "reset",
	OutcomeCancelled:        "cancelled",
	OutcomeTimedOut:         "timed out",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Result describes what a single input did to the session.
type Result struct {
	From    atm.Auth
	To      atm.Auth
	Outcome Outcome
	// Amount is the cash dispensed, or requested when the withdrawal was rejected.
	Amount uint64
	// Err is set for rejected cards and withdrawals.
	Err error
}

// Message is the text shown to the customer for this result.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeIgnored:
		if r.To.Kind() == atm.AuthWaiting {
			return "Please swipe your card first."
		}
		return "Key ignored."
	case OutcomeCardAccepted:
		return "Card accepted. Enter your PIN and press Enter."
	case OutcomeInvalidCard:
		return "Card could not be read."
	case OutcomeKeyAccepted:
		return "*"
	case OutcomePinAccepted:
		return "PIN accepted. Enter the amount to withdraw and press Enter."
	case OutcomePinRejected:
		return "Wrong PIN. Your card has been returned."
	case OutcomeDispensed:
		return fmt.Sprintf("Please take your cash: %d. Your card has been returned.", r.Amount)
	case OutcomeInsufficientCash:
		return fmt.Sprintf("Not enough cash in the machine for %d. Your card has been returned.", r.Amount)
	case OutcomeInvalidAmount:
		return "No amount entered. Your card has been returned."
	case OutcomeReset:
		return "Session reset. Your card has been returned."
	case OutcomeCancelled:
		if r.From.Kind() == atm.AuthWaiting {
			return "Nothing to cancel."
		}
		return "Cancelled. Your card has been returned."
	case OutcomeTimedOut:
		return "Session timed out. Your card has been returned."
	}
	return ""
}
