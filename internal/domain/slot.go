package domain

import "github.com/m04kA/SMC-SlotScheduler/pkg/types"

// PricedSlot is a bookable start time together with its suggested price
type PricedSlot struct {
	StartTime types.TimeString
	Price     float64
}
