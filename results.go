package easynft

// CheckResult captures any info needed for a dry-run of a transaction.
type CheckResult struct {
	// Log contains a short human readable summary.
	Log string

	// GasAllocated is an estimate of the work this call requires. The
	// host may use it for accounting, we never act on it ourselves.
	GasAllocated int64
}

// DeliverResult captures any info needed to report back after a
// transaction was applied.
type DeliverResult struct {
	// Data is the response data, usually the key of the entity the
	// message created or acted upon.
	Data []byte

	// Log contains a short human readable summary.
	Log string
}
