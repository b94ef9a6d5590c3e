package rental

import (
	"fmt"
	"time"
)

// BadgeClass is the visual classification of a payment status badge
type BadgeClass string

const (
	BadgeSuccess     BadgeClass = "success"
	BadgeWarning     BadgeClass = "warning"
	BadgeDestructive BadgeClass = "destructive"
	BadgeUrgent      BadgeClass = "urgent"
)

// PaymentBadge is the derived display status for a property's payment.
// The same derivation backs the list view, the detail view and the
// dashboard, so the three can never disagree.
type PaymentBadge struct {
	Label  string     `json:"label"`
	Class  BadgeClass `json:"class"`
	Urgent bool       `json:"urgent"`
}

// urgentWindowDays is the number of days before the due date at which a
// pending payment is flagged as urgent.
const urgentWindowDays = 5

// DerivePaymentBadge derives the display badge from the explicit payment
// status and the stored due date. It is a total, pure function:
//
//  1. an explicit Atrasado always wins, regardless of the due date;
//  2. an explicit Pagado wins next;
//  3. a due date strictly before today makes a Pendiente (or unset)
//     status Atrasado;
//  4. a future due date yields "Vence en N día(s)", urgent within
//     urgentWindowDays;
//  5. otherwise the badge is Pendiente.
func DerivePaymentBadge(status *PaymentStatus, nextPaymentDate *time.Time, today time.Time) PaymentBadge {
	if status != nil && *status == PaymentStatusOverdue {
		return PaymentBadge{Label: string(PaymentStatusOverdue), Class: BadgeDestructive}
	}
	if status != nil && *status == PaymentStatusPaid {
		return PaymentBadge{Label: string(PaymentStatusPaid), Class: BadgeSuccess}
	}

	if nextPaymentDate != nil {
		days := DaysUntil(*nextPaymentDate, today)
		if days < 0 {
			return PaymentBadge{Label: string(PaymentStatusOverdue), Class: BadgeDestructive}
		}
		if days >= 1 {
			noun := "días"
			if days == 1 {
				noun = "día"
			}
			badge := PaymentBadge{
				Label: fmt.Sprintf("Vence en %d %s", days, noun),
				Class: BadgeWarning,
			}
			if days <= urgentWindowDays {
				badge.Class = BadgeUrgent
				badge.Urgent = true
			}
			return badge
		}
	}

	return PaymentBadge{Label: string(PaymentStatusPending), Class: BadgeWarning}
}

// ExpiryPolicy configures how expiring tenancy contracts are flagged.
type ExpiryPolicy struct {
	// WindowMonths is how far ahead a contract end date is considered
	// "expiring soon".
	WindowMonths int
	// FlagExpired also flags contracts whose end date has already passed.
	// Off by default: an expired contract historically produced no flag.
	FlagExpired bool
}

// DefaultExpiryPolicy returns the standard three-month window
func DefaultExpiryPolicy() ExpiryPolicy {
	return ExpiryPolicy{WindowMonths: 3}
}

// ContractExpiry is the derived expiration flag for a tenancy contract
type ContractExpiry struct {
	Label   string `json:"label"`
	Months  int    `json:"months"`
	Expired bool   `json:"expired"`
}

// DeriveContractExpiry returns an expiration flag when the contract ends
// within the policy window, or nil when no flag applies. contractEnd may
// be nil (no contract on file).
func DeriveContractExpiry(contractEnd *time.Time, today time.Time, policy ExpiryPolicy) *ContractExpiry {
	if contractEnd == nil {
		return nil
	}

	months := wholeMonthsBetween(DateOf(today), DateOf(*contractEnd))
	if months < 0 {
		if policy.FlagExpired {
			return &ContractExpiry{Label: "contrato vencido", Expired: true}
		}
		return nil
	}
	if months > policy.WindowMonths {
		return nil
	}

	noun := "meses"
	if months == 1 {
		noun = "mes"
	}
	return &ContractExpiry{
		Label:  fmt.Sprintf("vence en %d %s", months, noun),
		Months: months,
	}
}

// wholeMonthsBetween returns the number of complete calendar months from
// one date to another; negative when to precedes from.
func wholeMonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return -1 - wholeMonthsBetween(to, from)
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}
