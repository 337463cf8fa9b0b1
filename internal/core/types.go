package core

// Payment is a submission accepted over the wire and owned by the queue
// until a dispatch worker drains it.
type Payment struct {
	CorrelationId string  `json:"correlationId"`
	Amount        float64 `json:"amount"`
}
