package service

import (
	"conference/internal/domains/booking/model"
	lawyerModel "conference/internal/domains/lawyer/model"
	receiptModel "conference/internal/domains/receipt/model"
	"conference/shared/failure"
	"fmt"
	"net/http"
)

var (
	ErrBookingNotFound   = &failure.Failure{Code: http.StatusNotFound, Message: "Booking not found."}
	ErrBookingExpired    = &failure.Failure{Code: http.StatusGone, Message: "Booking expired. Please create a new booking."}
	ErrBookingNotPending = &failure.Failure{Code: http.StatusConflict, Message: "This booking is no longer awaiting a receipt."}
	ErrInvalidTier       = &failure.Failure{Code: http.StatusBadRequest, Message: "Please select a valid ticket type."}
	ErrDuplicateIdentity = &failure.Failure{Code: http.StatusConflict, Message: "This identity has already been registered."}
	ErrEmptyUpdate       = &failure.Failure{Code: http.StatusBadRequest, Message: "update request cannot be empty"}

	ErrInvalidFile  = receiptModel.ErrInvalidFile
	ErrNoFile       = receiptModel.ErrNoFile
	ErrFileTooLarge = receiptModel.ErrFileTooLarge
)

// incompleteGuests is the validation failure for a missing or partial additional person set.
func incompleteGuests(tier model.Tier) error {
	switch tier {
	case model.TierDouble:
		return failure.BadRequestFromString("Please provide complete details (Name, BASL ID, NIC, Phone) for the second person in Double booking.")
	case model.TierTriple:
		return failure.BadRequestFromString("Please provide complete details (Name, BASL ID, NIC, Phone) for both additional persons in Triple booking.")
	default:
		return failure.BadRequestFromString(fmt.Sprintf("%s booking does not take additional persons.", tier))
	}
}

func repeatedIdentity(label, value string) error {
	return failure.BadRequestFromString(fmt.Sprintf("The %s (%s) is listed more than once.", label, value))
}

func statusTransition(from, to model.Status) error {
	return failure.BadRequestFromString(fmt.Sprintf("Booking status cannot change from %s to %s.", from, to))
}

// DuplicateIdentityError reports an identifier already held by a registered lawyer.
type DuplicateIdentityError struct {
	Field   string
	Value   string
	Primary bool
}

func (e *DuplicateIdentityError) Error() string {
	switch e.Field {
	case lawyerModel.FieldBaslID:
		if e.Primary {
			return fmt.Sprintf("This BASL ID (%s) has already been registered. Please use a different BASL ID.", e.Value)
		}

		return fmt.Sprintf("The BASL ID (%s) has already been registered.", e.Value)
	case lawyerModel.FieldNIC:
		if e.Primary {
			return fmt.Sprintf("This NIC (%s) has already been registered. Please use a different NIC.", e.Value)
		}

		return fmt.Sprintf("The NIC (%s) has already been registered.", e.Value)
	default:
		return "This email has already been registered."
	}
}

func (e *DuplicateIdentityError) Unwrap() error {
	return ErrDuplicateIdentity
}

// duplicateFromConstraint maps a lawyers unique constraint onto the primary registrant's value.
func duplicateFromConstraint(constraint string, lawyer lawyerModel.Lawyer) (*DuplicateIdentityError, bool) {
	switch constraint {
	case lawyerModel.ConstraintBaslID:
		return &DuplicateIdentityError{Field: lawyerModel.FieldBaslID, Value: lawyer.BaslID, Primary: true}, true
	case lawyerModel.ConstraintNIC:
		return &DuplicateIdentityError{Field: lawyerModel.FieldNIC, Value: lawyer.NIC, Primary: true}, true
	case lawyerModel.ConstraintEmail:
		return &DuplicateIdentityError{Field: lawyerModel.FieldEmail, Value: lawyer.Email, Primary: true}, true
	default:
		return nil, false
	}
}
