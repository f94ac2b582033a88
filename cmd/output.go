package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	suggestScheduleUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/suggest_schedule"
)

// ScheduleOutput JSON-представление результата команды suggest
type ScheduleOutput struct {
	RequestID string       `json:"request_id"`
	Date      string       `json:"date"`
	StoreID   int64        `json:"store_id"`
	ProductID int64        `json:"product_id"`
	VariantID int64        `json:"variant_id"`
	Closed    bool         `json:"closed"`
	BestTime  *string      `json:"best_time"`
	Slots     []SlotOutput `json:"slots"`
}

type SlotOutput struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

func toOutput(resp *suggestScheduleUC.Response) ScheduleOutput {
	out := ScheduleOutput{
		RequestID: resp.RequestID,
		Date:      resp.Date.Format(domain.DateFormat),
		StoreID:   resp.StoreID,
		ProductID: resp.ProductID,
		VariantID: resp.VariantID,
		Closed:    resp.Closed,
		Slots:     make([]SlotOutput, len(resp.Slots)),
	}
	if resp.BestTime != nil {
		best := resp.BestTime.String()
		out.BestTime = &best
	}
	for i, s := range resp.Slots {
		out.Slots[i] = SlotOutput{Time: s.StartTime.String(), Price: s.Price}
	}
	return out
}

func writeResponse(w io.Writer, resp *suggestScheduleUC.Response) error {
	data, err := json.MarshalIndent(toOutput(resp), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
