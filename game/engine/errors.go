package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for the order-processing taxonomy. Configuration errors are
// raised at construction; everything here aborts only the offending order.
var (
	// ErrInvalidController indicates an unknown controller id
	ErrInvalidController = errors.New("invalid controller id")

	// ErrInvalidAction indicates an unrecognized controller action type
	ErrInvalidAction = errors.New("invalid controller action type")

	// ErrInvalidBot indicates a bot id outside the controller's bot list
	ErrInvalidBot = errors.New("invalid bot id")

	// ErrInvalidDeckIndex indicates a deck removal index out of range
	ErrInvalidDeckIndex = errors.New("invalid deck index")

	// ErrInvalidOrder indicates missing or contradictory order parameters
	ErrInvalidOrder = errors.New("invalid order parameters")

	// ErrInsufficientResources indicates the controller cannot fund the action
	ErrInsufficientResources = errors.New("insufficient resources")

	// ErrInsufficientTime indicates the order's hour cost exceeds the
	// remaining hours in the current day
	ErrInsufficientTime = errors.New("not enough hours left in the day")

	// ErrGameFinished indicates an order arrived after the game reached a
	// terminal state
	ErrGameFinished = errors.New("game is no longer active")
)

// OrderError identifies which order in a ProcessTurn batch failed and why.
// The failed order leaves no resource or clock mutation behind; orders before
// it in the batch remain applied.
type OrderError struct {
	Index        int
	ControllerID int
	Action       ControllerActionType
	Err          error
}

// Error implements the error interface
func (e *OrderError) Error() string {
	return fmt.Sprintf("order %d (controller %d, %s): %v", e.Index, e.ControllerID, e.Action, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is matching
func (e *OrderError) Unwrap() error {
	return e.Err
}

// MarshalJSON encodes the failure for API consumers
func (e *OrderError) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"index":%d,"controller_id":%d,"action_type":%q,"reason":%q}`,
		e.Index, e.ControllerID, e.Action, e.Err.Error())), nil
}

// UnmarshalJSON restores a failure decoded from an API response. The cause
// comes back as an opaque error; sentinel identity does not survive the wire.
func (e *OrderError) UnmarshalJSON(data []byte) error {
	var wire struct {
		Index        int                  `json:"index"`
		ControllerID int                  `json:"controller_id"`
		Action       ControllerActionType `json:"action_type"`
		Reason       string               `json:"reason"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Index = wire.Index
	e.ControllerID = wire.ControllerID
	e.Action = wire.Action
	e.Err = errors.New(wire.Reason)
	return nil
}
