package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgInvalidPosition      = "position out of bounds"
	ErrMsgCellOccupied         = "cell is occupied"
	ErrMsgCellEmpty            = "cell is empty"
	ErrMsgSoilUnsuitable       = "soil is unsuitable for planting"
	ErrMsgNotHarvestable       = "plant is not fully grown"
	ErrMsgNotWithered          = "plant is not withered"
	ErrMsgNotWaitingForWater   = "plant does not need water"
	ErrMsgOnCooldown           = "action on cooldown"
	ErrMsgNoPlantDefinitions   = "no plant definitions available"
	ErrMsgNegativeAmount       = "amount must not be negative"
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgInsufficientPetals   = "insufficient petals"
	ErrMsgDisposed             = "component disposed"
	ErrMsgInvalidTransition    = "invalid lifecycle transition"
	ErrMsgInvalidConfiguration = "invalid configuration"
)

// Common domain errors.
// Gameplay operations report these as a false result; they are wrapped with
// fmt.Errorf("%w: ...") where more context helps logs and the HTTP layer.
var (
	ErrInvalidPosition      = errors.New(ErrMsgInvalidPosition)
	ErrCellOccupied         = errors.New(ErrMsgCellOccupied)
	ErrCellEmpty            = errors.New(ErrMsgCellEmpty)
	ErrSoilUnsuitable       = errors.New(ErrMsgSoilUnsuitable)
	ErrNotHarvestable       = errors.New(ErrMsgNotHarvestable)
	ErrNotWithered          = errors.New(ErrMsgNotWithered)
	ErrNotWaitingForWater   = errors.New(ErrMsgNotWaitingForWater)
	ErrOnCooldown           = errors.New(ErrMsgOnCooldown)
	ErrNoPlantDefinitions   = errors.New(ErrMsgNoPlantDefinitions)
	ErrNegativeAmount       = errors.New(ErrMsgNegativeAmount)
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientPetals   = errors.New(ErrMsgInsufficientPetals)
	ErrDisposed             = errors.New(ErrMsgDisposed)
	ErrInvalidTransition    = errors.New(ErrMsgInvalidTransition)
	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfiguration)
)
