package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

func (s TradeSide) Validate() error {
	if s != TradeSideBuy && s != TradeSideSell {
		return ErrInvalidTradeSide
	}

	return nil
}

type PositionEffect string

const (
	PositionEffectOpen  PositionEffect = "open"
	PositionEffectClose PositionEffect = "close"
)

func (e PositionEffect) Validate() error {
	if e != PositionEffectOpen && e != PositionEffectClose {
		return ErrInvalidPositionEffect
	}

	return nil
}

// Fill is a single execution applied to an instrument's gross position. Price
// is informational: position bookkeeping keys off side, effect and volume.
type Fill struct {
	ExecID    uuid.UUID        `json:"execId"`
	Symbol    InstrumentSymbol `json:"symbol"`
	Side      TradeSide        `json:"side"`
	Effect    PositionEffect   `json:"effect"`
	Price     float64          `json:"price"`
	Volume    float64          `json:"volume"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewFill(symbol InstrumentSymbol, side TradeSide, effect PositionEffect, price float64, volume float64, timestamp time.Time) *Fill {
	return &Fill{
		ExecID:    uuid.New(),
		Symbol:    symbol,
		Side:      side,
		Effect:    effect,
		Price:     price,
		Volume:    volume,
		Timestamp: timestamp,
	}
}

func (f *Fill) Validate() error {
	if f.Symbol == "" {
		return ErrSymbolNotSet
	}

	if err := f.Side.Validate(); err != nil {
		return err
	}

	if err := f.Effect.Validate(); err != nil {
		return err
	}

	if f.Volume <= 0 {
		return ErrInvalidFillVolume
	}

	return nil
}

func (f *Fill) String() string {
	return fmt.Sprintf("%s %s %.2f %s @%.2f", f.Side, f.Effect, f.Volume, f.Symbol, f.Price)
}
