// Package atm holds the authentication state machine of a single ATM session.
package atm

import "github.com/luckyComet55/atm-tg-bot/pkg/fsm"

// Machine is the ATM transition table. Unknown combinations fall back to Waiting.
type Machine struct{}

var _ fsm.Machine[Auth, Action] = Machine{}

func (Machine) NextState(current Auth, a Action) Auth {
	switch current.kind {
	case AuthWaiting:
		if a.kind == ActionSwipeCard {
			return Authenticating(a.pinHash)
		}
	case AuthAuthenticating:
		switch {
		case a.kind == ActionSwipeCard:
			return Authenticating(a.pinHash)
		case a.kind == ActionPressKey && a.key == KeyEnter:
			if a.submitted && a.pinHash == current.expected {
				return Authenticated()
			}
			return Waiting()
		case a.kind == ActionPressKey && a.key.IsDigit():
			return current
		}
	case AuthAuthenticated:
		switch {
		case a.kind == ActionPressKey && a.key == KeyEnter:
			return Waiting()
		case a.kind == ActionPressKey && a.key.IsDigit():
			return current
		}
	}
	return Waiting()
}

func NewFSM() *fsm.FSM[Auth, Action] {
	return fsm.NewFSM[Auth, Action](Machine{}, Waiting())
}
