package subscriptiondto

// ToggleResult tells the caller the state after a toggle.
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}
