package domain

// Normalize backfills derived fields missing from older stored records:
// a zero renewed date falls back to the pawn date, and zero maturity or
// forfeit dates are recomputed from the renewal anchor. It runs once when a
// record enters the domain and never as part of transaction handling.
func Normalize(account LoanAccount) LoanAccount {
	if account.RenewedDate.IsZero() && !account.PawnDate.IsZero() {
		account.RenewedDate = account.PawnDate
	}
	if account.MaturityDate.IsZero() && !account.RenewedDate.IsZero() {
		account.MaturityDate = MaturityDateFrom(account.RenewedDate)
	}
	if account.ForfeitDate.IsZero() && !account.RenewedDate.IsZero() {
		account.ForfeitDate = ForfeitDateFrom(account.RenewedDate)
	}
	return account
}
