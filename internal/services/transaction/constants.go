package transaction

// PendingReviewThreshold is the risk score at or above which a transaction is
// held as pending and a fraud alert is raised.
const PendingReviewThreshold = 65

// Pagination limits
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)
