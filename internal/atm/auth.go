package atm

type AuthKind uint8

const (
	AuthWaiting AuthKind = iota
	AuthAuthenticating
	AuthAuthenticated
)

func (k AuthKind) String() string {
	switch k {
	case AuthWaiting:
		return "Waiting"
	case AuthAuthenticating:
		return "Authenticating"
	case AuthAuthenticated:
		return "Authenticated"
	}
	return "Unknown"
}

// Auth is the authentication status of the ATM. The zero value is Waiting.
type Auth struct {
	kind     AuthKind
	expected uint64
}

// Waiting: no session yet, the ATM waits for a card.
func Waiting() Auth {
	return Auth{kind: AuthWaiting}
}

// Authenticated: the pin matched, the ATM waits for an amount.
func Authenticated() Auth {
	return Auth{kind: AuthAuthenticated}
}

// Authenticating: a card was swiped and the ATM waits for the pin hashing to expected.
func Authenticating(expected uint64) Auth {
	return Auth{kind: AuthAuthenticating, expected: expected}
}

func (a Auth) Kind() AuthKind {
	return a.kind
}

// String never includes the expected hash.
func (a Auth) String() string {
	return a.kind.String()
}
