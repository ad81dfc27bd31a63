package adminclient

import "fmt"

// StatusTone is the visual weight a status renders with.
type StatusTone string

const (
	ToneWarning StatusTone = "warning"
	ToneSuccess StatusTone = "success"
	ToneDanger  StatusTone = "danger"
	ToneNeutral StatusTone = "neutral"
)

// Operator-facing messages. French, matching the rest of the dashboard.
const (
	MsgApproved      = "Demande approuvée avec succès"
	MsgRejected      = "Demande rejetée"
	MsgNoWithdrawals = "Aucune demande de retrait"
	MsgNotFound      = "Demande non trouvée"
)

// StatusLabel returns the French display label for a withdrawal status.
// Unknown statuses render as-is rather than hiding the raw value.
func StatusLabel(status string) string {
	switch status {
	case "pending":
		return "En attente"
	case "approved":
		return "Approuvée"
	case "rejected":
		return "Rejetée"
	}
	return status
}

// StatusToTone maps a withdrawal status to its display tone.
func StatusToTone(status string) StatusTone {
	switch status {
	case "pending":
		return ToneWarning
	case "approved":
		return ToneSuccess
	case "rejected":
		return ToneDanger
	}
	return ToneNeutral
}

// FormatAmount renders a money value the way the dashboard shows it,
// e.g. "120.50€".
func FormatAmount(a Amount) string {
	return fmt.Sprintf("%s€", a.StringFixed(2))
}
