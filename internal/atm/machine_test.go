package atm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luckyComet55/atm-tg-bot/internal/atm"
	"github.com/luckyComet55/atm-tg-bot/internal/pinhash"
)

var digits = []atm.Key{atm.KeyOne, atm.KeyTwo, atm.KeyThree, atm.KeyFour}

func next(s atm.Auth, a atm.Action) atm.Auth {
	return atm.Machine{}.NextState(s, a)
}

func TestAuth_ZeroValueIsWaiting(t *testing.T) {
	var a atm.Auth
	assert.Equal(t, atm.Waiting(), a)
}

func TestNextState_SwipeCard(t *testing.T) {
	assert.Equal(t, atm.Authenticating(1234), next(atm.Waiting(), atm.SwipeCard(1234)))
	assert.Equal(t, atm.Authenticating(0), next(atm.Waiting(), atm.SwipeCard(0)))
}

func TestNextState_SwipeCardAgainPartWayThrough(t *testing.T) {
	assert.Equal(t, atm.Authenticating(1234), next(atm.Authenticating(1234), atm.SwipeCard(1234)))
	assert.Equal(t, atm.Authenticating(99), next(atm.Authenticating(1234), atm.SwipeCard(99)))
}

func TestNextState_PressKeyBeforeCardSwipe(t *testing.T) {
	for _, k := range atm.Keys() {
		assert.Equal(t, atm.Waiting(), next(atm.Waiting(), atm.PressKey(k)), "key %s", k)
	}
	assert.Equal(t, atm.Waiting(), next(atm.Waiting(), atm.SubmitPin(1)))
}

func TestNextState_EnterPinDigits(t *testing.T) {
	for _, k := range digits {
		assert.Equal(t, atm.Authenticating(1234), next(atm.Authenticating(1234), atm.PressKey(k)), "key %s", k)
	}
}

func TestNextState_SubmitPin(t *testing.T) {
	pin := pinhash.Sequence(digits)

	t.Run("correct pin", func(t *testing.T) {
		assert.Equal(t, atm.Authenticated(), next(atm.Authenticating(pin), atm.SubmitPin(pin)))
	})

	t.Run("wrong pin", func(t *testing.T) {
		wrong := pinhash.Sequence([]atm.Key{atm.KeyFour, atm.KeyThree, atm.KeyTwo, atm.KeyOne})
		assert.Equal(t, atm.Waiting(), next(atm.Authenticating(pin), atm.SubmitPin(wrong)))
	})

	t.Run("enter without submission", func(t *testing.T) {
		assert.Equal(t, atm.Waiting(), next(atm.Authenticating(pin), atm.PressKey(atm.KeyEnter)))
		assert.Equal(t, atm.Waiting(), next(atm.Authenticating(0), atm.PressKey(atm.KeyEnter)))
	})

	t.Run("compares against the swiped card", func(t *testing.T) {
		assert.Equal(t, atm.Waiting(), next(atm.Authenticating(1234), atm.SubmitPin(pin)))
		assert.Equal(t, atm.Authenticated(), next(atm.Authenticating(1234), atm.SubmitPin(1234)))
	})
}

func TestNextState_EnterWithdrawAmount(t *testing.T) {
	for _, k := range digits {
		assert.Equal(t, atm.Authenticated(), next(atm.Authenticated(), atm.PressKey(k)), "key %s", k)
	}
	assert.Equal(t, atm.Waiting(), next(atm.Authenticated(), atm.PressKey(atm.KeyEnter)))
	assert.Equal(t, atm.Waiting(), next(atm.Authenticated(), atm.SubmitPin(1)))
}

func TestNextState_FailSafe(t *testing.T) {
	tests := []struct {
		name   string
		state  atm.Auth
		action atm.Action
	}{
		{"swipe while authenticated", atm.Authenticated(), atm.SwipeCard(1)},
		{"zero action while waiting", atm.Waiting(), atm.Action{}},
		{"zero action while authenticating", atm.Authenticating(1), atm.Action{}},
		{"zero action while authenticated", atm.Authenticated(), atm.Action{}},
		{"unknown key while authenticating", atm.Authenticating(1), atm.PressKey(atm.Key(42))},
		{"unknown key while authenticated", atm.Authenticated(), atm.PressKey(atm.Key(0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, atm.Waiting(), next(tt.state, tt.action))
		})
	}
}

func TestNewFSM(t *testing.T) {
	pin := pinhash.Sequence(digits)
	f := atm.NewFSM()

	assert.Equal(t, atm.Waiting(), f.GetCurrent())
	f.Trigger(atm.SwipeCard(pin))
	f.Trigger(atm.PressKey(atm.KeyOne))
	_, to := f.Trigger(atm.SubmitPin(pin))
	assert.Equal(t, atm.Authenticated(), to)
}
