package leave

const (
	StatusRequested = "REQUESTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"

	OutcomeApprove = "APPROVE"
	OutcomeReject  = "REJECT"

	TypeAnnual = "ANNUAL"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"
)
