package preorder

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name to its human-readable validation message.
type FieldErrors map[string]string

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateContactDetails checks every contact field against the rules gating
// the ContactInfo step. now is the instant the requested time is compared to.
// An empty result means the details are valid.
func ValidateContactDetails(details ContactDetails, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(details.Name) == "" {
		errs["name"] = "Name is required"
	}

	switch {
	case strings.TrimSpace(details.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(details.Email):
		errs["email"] = "Please enter a valid email format (user@example.com)"
	}

	if NormalizePhone(details.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if len(NormalizePhone(details.Phone)) != 10 {
		errs["phone"] = "Phone number must contain exactly 10 digits"
	}

	if details.OrderType != OrderTypePickup && details.OrderType != OrderTypeDelivery {
		errs["orderType"] = "Please select a valid order type"
	}

	if details.OrderType == OrderTypeDelivery && strings.TrimSpace(details.Address) == "" {
		errs["address"] = "Address is required for delivery orders"
	}

	switch {
	case details.RequestedTime.IsZero():
		errs["pickupTime"] = "Please select a pickup/delivery time"
	case !details.RequestedTime.After(now):
		errs["pickupTime"] = "Pickup/delivery time must be in the future"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
