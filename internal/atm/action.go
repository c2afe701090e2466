package atm

import "fmt"

type ActionKind uint8

const (
	ActionSwipeCard ActionKind = iota + 1
	ActionPressKey
)

// Action is something a customer does to the ATM. Build values with SwipeCard,
// PressKey or SubmitPin.
type Action struct {
	kind      ActionKind
	pinHash   uint64
	key       Key
	submitted bool
}

// SwipeCard carries the hash of the pin that should be keyed in next.
func SwipeCard(pinHash uint64) Action {
	return Action{kind: ActionSwipeCard, pinHash: pinHash}
}

func PressKey(k Key) Action {
	return Action{kind: ActionPressKey, key: k}
}

// SubmitPin is an Enter press carrying the digest of the keys entered before it.
func SubmitPin(pinHash uint64) Action {
	return Action{kind: ActionPressKey, key: KeyEnter, pinHash: pinHash, submitted: true}
}

func (a Action) String() string {
	switch a.kind {
	case ActionSwipeCard:
		return "SwipeCard"
	case ActionPressKey:
		if a.submitted {
			return "SubmitPin"
		}
		return fmt.Sprintf("PressKey(%s)", a.key)
	}
	return "Unknown"
}
