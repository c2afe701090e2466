package repository

import (
	"errors"
	"fmt"
	"sync"
)

var ErrTerminalBusy = errors.New("terminal is in use by another operator")

// OperatorRepository tracks the operators talking to the bot and which one of them
// currently holds the single ATM session.
type OperatorRepository interface {
	AddOperator(operatorID, chatID int64)
	GetOperatorChat(operatorID int64) (int64, bool)
	Acquire(operatorID int64) error
	Release(operatorID int64) error
	Holder() (int64, bool)
	CanUse(operatorID int64) bool
}

type operatorRepository struct {
	mu     sync.RWMutex
	chats  map[int64]int64
	holder int64
	held   bool
}

func NewOperatorRepository() OperatorRepository {
	return &operatorRepository{
		chats: make(map[int64]int64),
	}
}

func (or *operatorRepository) AddOperator(operatorID, chatID int64) {
	or.mu.Lock()
	defer or.mu.Unlock()

	or.chats[operatorID] = chatID
}

func (or *operatorRepository) GetOperatorChat(operatorID int64) (int64, bool) {
	or.mu.RLock()
	defer or.mu.RUnlock()

	chatID, ok := or.chats[operatorID]
	return chatID, ok
}

// Acquire hands the terminal to operatorID. Acquiring a terminal already held by the
// same operator is a no-op.
func (or *operatorRepository) Acquire(operatorID int64) error {
	or.mu.Lock()
	defer or.mu.Unlock()

	if or.held && or.holder != operatorID {
		return fmt.Errorf("operator %d: %w", operatorID, ErrTerminalBusy)
	}
	or.holder = operatorID
	or.held = true
	return nil
}

func (or *operatorRepository) Release(operatorID int64) error {
	or.mu.Lock()
	defer or.mu.Unlock()

	if !or.held {
		return nil
	}
	if or.holder != operatorID {
		return fmt.Errorf("operator %d does not hold the terminal: %w", operatorID, ErrTerminalBusy)
	}
	or.held = false
	or.holder = 0
	return nil
}

func (or *operatorRepository) Holder() (int64, bool) {
	or.mu.RLock()
	defer or.mu.RUnlock()

	return or.holder, or.held
}

// CanUse reports whether operatorID may press keys right now.
func (or *operatorRepository) CanUse(operatorID int64) bool {
	or.mu.RLock()
	defer or.mu.RUnlock()

	return !or.held || or.holder == operatorID
}
