package kafka

// ContactReceivedEvent is the payload published when a contact form
// submission lands.
type ContactReceivedEvent struct {
	ContactID int64 `json:"contact_id"`
}
