package models

type RemovalReason string

const (
	RemovalReasonFilled   RemovalReason = "filled"
	RemovalReasonCanceled RemovalReason = "canceled"
	RemovalReasonExpired  RemovalReason = "expired"
)

// OrderRemovedMessage announces terminal order removals on the event queue.
type OrderRemovedMessage struct {
	OrderHashes []string      `json:"order_hashes"`
	Reason      RemovalReason `json:"reason"`
	Timestamp   int64         `json:"timestamp"`
}

// OrderUpdatedMessage announces a partial fill on the event queue.
type OrderUpdatedMessage struct {
	OrderHash                    string  `json:"order_hash"`
	RemainingFillableTakerAmount *BigInt `json:"remaining_fillable_taker_amount"`
	Timestamp                    int64   `json:"timestamp"`
}
