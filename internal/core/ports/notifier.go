package ports

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier schedules an email for best-effort delivery. Send never blocks on
// the transport and never reports failure to the caller: a send that cannot
// be delivered is logged and lost, not retried.
type Notifier interface {
	Send(msg Message)
}
