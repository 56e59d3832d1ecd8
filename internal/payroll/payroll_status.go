package payroll

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCash         = "CASH"
	PaymentMethodCheque       = "CHEQUE"
)

var allowedTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusApproved:  true,
		StatusPaid:      true,
		StatusCancelled: true,
	},
	StatusApproved: {
		StatusPaid:      true,
		StatusCancelled: true,
	},
}

// CanTransition reports whether a payroll may move from one status to
// another. PAID and CANCELLED are terminal.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

func IsTerminal(status string) bool {
	return len(allowedTransitions[status]) == 0
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}
