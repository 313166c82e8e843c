package email

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Provider sends email. The ops-alert path (persistence incidents, ledger
// drift) is the main consumer.
type Provider interface {
	Send(email *Email) error
	Validate() error
	Close() error
}
