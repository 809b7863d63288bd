package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxState — состояние попытки покупки.
type TxState int

const (
	StateSelecting TxState = iota
	StateQuoted
	StatePaid
	StateDispensed
	StateReceipted
	StateCancelled
)

func (s TxState) String() string {
	switch s {
	case StateSelecting:
		return "SELECTING"
	case StateQuoted:
		return "QUOTED"
	case StatePaid:
		return "PAID"
	case StateDispensed:
		return "DISPENSED"
	case StateReceipted:
		return "RECEIPTED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("TxState(%d)", int(s))
	}
}

// Terminal сообщает, что попытка покупки завершена.
func (s TxState) Terminal() bool {
	return s == StateReceipted || s == StateCancelled
}

// Остаток меняется только на переходе PAID -> DISPENSED.
var transitions = map[TxState][]TxState{
	StateSelecting: {StateQuoted, StateCancelled},
	StateQuoted:    {StatePaid, StateCancelled},
	StatePaid:      {StateDispensed, StateCancelled},
	StateDispensed: {StateReceipted},
}

// Transaction — эфемерная попытка покупки. Нигде не сохраняется.
type Transaction struct {
	ID           string
	Item         ItemRef
	ItemName     string
	Flavor       string // пусто, если у товара нет вкусов
	Quantity     int
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	Tendered     decimal.Decimal
	Change       decimal.Decimal
	State        TxState
	CancelReason error
	StartedAt    time.Time
}

func NewTransaction(ref ItemRef, itemName string, flavor string) *Transaction {
	return &Transaction{
		ID:        uuid.NewString(),
		Item:      ref,
		ItemName:  itemName,
		Flavor:    flavor,
		State:     StateSelecting,
		StartedAt: time.Now().UTC(),
	}
}

// MarkQuoted фиксирует цену и количество.
func (t *Transaction) MarkQuoted(unitPrice decimal.Decimal, quantity int, total decimal.Decimal) error {
	if err := t.transition(StateQuoted); err != nil {
		return err
	}
	t.UnitPrice = unitPrice
	t.Quantity = quantity
	t.Total = total
	return nil
}

// MarkPaid фиксирует внесённую сумму и сдачу.
func (t *Transaction) MarkPaid(tendered decimal.Decimal, change decimal.Decimal) error {
	if err := t.transition(StatePaid); err != nil {
		return err
	}
	t.Tendered = tendered
	t.Change = change
	return nil
}

func (t *Transaction) MarkDispensed() error {
	return t.transition(StateDispensed)
}

func (t *Transaction) MarkReceipted() error {
	return t.transition(StateReceipted)
}

// Cancel завершает попытку покупки с указанной причиной.
func (t *Transaction) Cancel(reason error) error {
	if err := t.transition(StateCancelled); err != nil {
		return err
	}
	t.CancelReason = reason
	return nil
}

func (t *Transaction) transition(to TxState) error {
	if t.State.Terminal() {
		return e.Wrap(fmt.Sprintf("%s -> %s", t.State, to), e.ErrTransactionFinished)
	}

	if !slices.Contains(transitions[t.State], to) {
		return e.Wrap(fmt.Sprintf("%s -> %s", t.State, to), e.ErrIllegalTransition)
	}

	t.State = to
	return nil
}
