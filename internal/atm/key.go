package atm

import (
	"fmt"
	"strings"
)

// Key is a button on the ATM keypad.
type Key uint8

const (
	KeyOne Key = iota + 1
	KeyTwo
	KeyThree
	KeyFour
	KeyEnter
)

var keyLabels = map[Key]string{
	KeyOne:   "1",
	KeyTwo:   "2",
	KeyThree: "3",
	KeyFour:  "4",
	KeyEnter: "Enter",
}

var keyNames = map[Key]string{
	KeyOne:   "One",
	KeyTwo:   "Two",
	KeyThree: "Three",
	KeyFour:  "Four",
	KeyEnter: "Enter",
}

// Keys lists the keypad in display order.
func Keys() []Key {
	return []Key{KeyOne, KeyTwo, KeyThree, KeyFour, KeyEnter}
}

func (k Key) String() string {
	if label, ok := keyLabels[k]; ok {
		return label
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

func (k Key) IsDigit() bool {
	return k >= KeyOne && k <= KeyFour
}

// Digit returns the numeric value printed on a digit key, 0 for anything else.
func (k Key) Digit() int {
	if !k.IsDigit() {
		return 0
	}
	return int(k)
}

func (k Key) AppendHashKey(b []byte) []byte {
	return append(b, keyNames[k]...)
}

// ParseKey accepts a key label ("1", "enter") or name ("Three").
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	for _, k := range Keys() {
		if strings.EqualFold(s, keyLabels[k]) || strings.EqualFold(s, keyNames[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// ParseDigits turns a string such as "1234" into digit keys.
func ParseDigits(s string) ([]Key, error) {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		if r < '1' || r > '4' {
			return nil, fmt.Errorf("keypad has no key %q", r)
		}
		keys = append(keys, Key(r-'0'))
	}
	return keys, nil
}
