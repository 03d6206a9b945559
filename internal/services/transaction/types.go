package transaction

// CreateRequest is the validated payload for a proposed transaction. Optional
// fields are explicitly optional; everything is checked at the boundary
// before the risk engine sees it.
type CreateRequest struct {
	Type            string  `json:"type" validate:"required,oneof=deposit withdrawal transfer payment"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	RecipientID     *uint   `json:"recipient_id,omitempty" validate:"omitempty,gt=0"`
	CustomRecipient string  `json:"custom_recipient,omitempty" validate:"omitempty,max=120"`
	Description     string  `json:"description,omitempty" validate:"omitempty,max=255"`
	DeviceInfo      string  `json:"device_info,omitempty" validate:"omitempty,max=255"`
	IPAddress       string  `json:"ip_address,omitempty" validate:"omitempty,max=64"`
	Location        string  `json:"location,omitempty" validate:"omitempty,max=255"`

	// Metadata carries channel-specific facts, e.g. the card token behind a
	// deposit. Stored verbatim on the transaction.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
