// Package validate checks raw client input before it reaches the
// engine. Failures carry a machine-readable code, the offending field
// and its value; they are always recoverable and never touch state.
// The engine's own rejections are a separate class: validate guards
// shape and bounds, the engine judges legality against the hand.
package validate

import (
	"fmt"
	"math"
	"time"

	"github.com/cardroom/trainer/internal/engine"
)

// FieldError reports one invalid input field.
type FieldError struct {
	Code  string `json:"code"`
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q has invalid value %v", e.Code, e.Field, e.Value)
}

// Error codes.
const (
	CodeNotFinite    = "amount-not-finite"
	CodeNotInteger   = "amount-not-integer"
	CodeNegative     = "amount-negative"
	CodeOutOfRange   = "out-of-range"
	CodeUnknownValue = "unknown-value"
	CodeMissing      = "missing"
	CodeDuplicate    = "duplicate"
)

func fail(code, field string, value any) *FieldError {
	return &FieldError{Code: code, Field: field, Value: value}
}

// RawAction is an action record as submitted by a client, before any
// engine semantics apply. Amount arrives as a float because that is
// what JSON gives us; it must be a finite non-negative integer.
type RawAction struct {
	Type   string  `json:"type"`
	Seat   int     `json:"seat"`
	Amount float64 `json:"amount"`
	Street string  `json:"street"`
	AllIn  bool    `json:"allIn"`
}

// Action checks a raw action record and converts it into the engine's
// typed form. The timestamp is advisory and recorded as given.
func Action(raw RawAction, table engine.Table, at time.Time) (engine.Action, error) {
	if math.IsNaN(raw.Amount) || math.IsInf(raw.Amount, 0) {
		return nil, fail(CodeNotFinite, "amount", raw.Amount)
	}
	if raw.Amount != math.Trunc(raw.Amount) {
		return nil, fail(CodeNotInteger, "amount", raw.Amount)
	}
	if raw.Amount < 0 {
		return nil, fail(CodeNegative, "amount", raw.Amount)
	}
	if raw.Amount > math.MaxInt32 {
		return nil, fail(CodeOutOfRange, "amount", raw.Amount)
	}
	if raw.Seat < 0 || raw.Seat >= table.MaxSeats {
		return nil, fail(CodeOutOfRange, "seat", raw.Seat)
	}
	street, err := engine.ParseStreet(raw.Street)
	if err != nil {
		return nil, fail(CodeUnknownValue, "street", raw.Street)
	}

	base := engine.Base{Seat: raw.Seat, Street: street, At: at}
	amount := int(raw.Amount)

	switch engine.ActionKind(raw.Type) {
	case engine.KindFold:
		return engine.Fold{Base: base}, nil
	case engine.KindCheck:
		return engine.Check{Base: base}, nil
	case engine.KindCall:
		return engine.Call{Base: base}, nil
	case engine.KindBet:
		return engine.Bet{Base: base, Amount: amount, AllIn: raw.AllIn}, nil
	case engine.KindRaise:
		return engine.Raise{Base: base, Amount: amount, AllIn: raw.AllIn}, nil
	case engine.KindNextHand:
		return engine.NextHand{Base: base}, nil
	default:
		return nil, fail(CodeUnknownValue, "type", raw.Type)
	}
}

// HandConfig checks the table and seating parameters for a new hand.
func HandConfig(cfg engine.HandConfig) error {
	t := cfg.Table
	if t.MaxSeats < 2 || t.MaxSeats > engine.MaxSeats {
		return fail(CodeOutOfRange, "table.maxSeats", t.MaxSeats)
	}
	if t.SmallBlind <= 0 {
		return fail(CodeOutOfRange, "table.smallBlind", t.SmallBlind)
	}
	if t.BigBlind < t.SmallBlind {
		return fail(CodeOutOfRange, "table.bigBlind", t.BigBlind)
	}
	if t.Ante < 0 {
		return fail(CodeOutOfRange, "table.ante", t.Ante)
	}
	if len(cfg.Players) < 2 || len(cfg.Players) > t.MaxSeats {
		return fail(CodeOutOfRange, "players", len(cfg.Players))
	}

	seats := map[int]bool{}
	ids := map[string]bool{}
	dealerSeated := false
	for i, p := range cfg.Players {
		field := fmt.Sprintf("players[%d]", i)
		if p.ID == "" {
			return fail(CodeMissing, field+".id", p.ID)
		}
		if ids[p.ID] {
			return fail(CodeDuplicate, field+".id", p.ID)
		}
		ids[p.ID] = true
		if p.Seat < 0 || p.Seat >= t.MaxSeats {
			return fail(CodeOutOfRange, field+".seat", p.Seat)
		}
		if seats[p.Seat] {
			return fail(CodeDuplicate, field+".seat", p.Seat)
		}
		seats[p.Seat] = true
		if p.Stack <= 0 {
			return fail(CodeOutOfRange, field+".stack", p.Stack)
		}
		if p.Seat == cfg.Dealer {
			dealerSeated = true
		}
	}
	if !dealerSeated {
		return fail(CodeOutOfRange, "dealer", cfg.Dealer)
	}
	return nil
}
