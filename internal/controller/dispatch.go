package controller

import (
	"context"
	"fmt"
)

// Intent names a user action.
type Intent string

const (
	IntentSubmitSingle   Intent = "submitSingle"
	IntentSubmitBulk     Intent = "submitBulk"
	IntentRefreshListing Intent = "refreshListing"
	IntentClearAll       Intent = "clearAll"
	IntentRetrieveItem   Intent = "retrieveItem"
	IntentSaveItem       Intent = "saveItem"
)

// Handler performs one intent.
type Handler func(ctx context.Context, in Input) (Outcome, error)

func (c *Controller) dispatchTable() map[Intent]Handler {
	return map[Intent]Handler{
		IntentSubmitSingle:   c.SubmitSingle,
		IntentSubmitBulk:     c.SubmitBulk,
		IntentRefreshListing: func(ctx context.Context, _ Input) (Outcome, error) { return c.RefreshListing(ctx) },
		IntentClearAll:       func(ctx context.Context, in Input) (Outcome, error) { return c.ClearAll(ctx, in.Confirmer) },
		IntentRetrieveItem:   func(_ context.Context, in Input) (Outcome, error) { return c.RetrieveItem(in.Name) },
		IntentSaveItem:       func(ctx context.Context, in Input) (Outcome, error) { return c.SaveItem(ctx, in.Name) },
	}
}

// Dispatch runs the handler registered for intent.
func (c *Controller) Dispatch(ctx context.Context, intent Intent, in Input) (Outcome, error) {
	h, ok := c.handlers[intent]
	if !ok {
		return Outcome{}, fmt.Errorf("dispatch %q: unknown intent", intent)
	}
	return h(ctx, in)
}
