package tokebi

// Convenience recorders for the event types the Tokebi backend understands
// natively. All of them route through RecordEventPayload and get the same
// identity/timestamp stamping.

// RecordLevelStart queues a level_start event.
func (c *Client) RecordLevelStart(level string) error {
	return c.RecordEventPayload("level_start", map[string]any{
		"level": level,
	})
}

// RecordLevelComplete queues a level_complete event.
func (c *Client) RecordLevelComplete(level string, completionTime float64, score int) error {
	return c.RecordEventPayload("level_complete", map[string]any{
		"level":           level,
		"completion_time": completionTime,
		"score":           score,
	})
}

// RecordItemPurchase queues an item_purchase event. totalCost is derived.
func (c *Client) RecordItemPurchase(itemID, currency string, perItemCost, quantity int) error {
	return c.RecordEventPayload("item_purchase", map[string]any{
		"itemId":       itemID,
		"currency":     currency,
		"perItemCost":  perItemCost,
		"itemQuantity": quantity,
		"totalCost":    perItemCost * quantity,
	})
}

// RecordCurrencyPurchase queues a currency_purchase event for real-money
// transactions.
func (c *Client) RecordCurrencyPurchase(gameCurrencyType string, gameCurrencyAmount int, realCurrencyType string, realMoneyCost float64, paymentProvider string) error {
	return c.RecordEventPayload("currency_purchase", map[string]any{
		"gameCurrencyType":   gameCurrencyType,
		"gameCurrencyAmount": gameCurrencyAmount,
		"realCurrencyType":   realCurrencyType,
		"realMoneyCost":      realMoneyCost,
		"paymentProvider":    paymentProvider,
	})
}

// RecordCurrencyGiven queues a currency_given event for grants of in-game
// currency.
func (c *Client) RecordCurrencyGiven(gameCurrencyType string, gameCurrencyAmount int) error {
	return c.RecordEventPayload("currency_given", map[string]any{
		"gameCurrencyType":   gameCurrencyType,
		"gameCurrencyAmount": gameCurrencyAmount,
	})
}

// RecordError queues an error event with optional extra attributes.
func (c *Client) RecordError(message string, attributes map[string]string) error {
	payload := coerceAttributes(attributes)
	payload["error"] = message
	return c.RecordEventPayload("error", payload)
}

// RecordProgress queues a progress event, e.g. ("complete", "world1.level3").
func (c *Client) RecordProgress(progressType, progressHierarchy string, attributes map[string]string) error {
	payload := coerceAttributes(attributes)
	payload["progressType"] = progressType
	payload["progressHierarchy"] = progressHierarchy
	return c.RecordEventPayload("progress", payload)
}
