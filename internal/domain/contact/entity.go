package contact

import "time"

const StatusNew = "new"

// Submission is a sanitized contact-form message. SourceIP is recorded for
// abuse audit; it never appears in client responses.
// Record is a Submission as returned by the data store, which assigns the ID.
type Record struct {
	ID string `json:"id"`
	Submission
}

type Submission struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	SourceIP  string    `json:"ip_address"`
}
