package authorizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateCard checks card details before they are sent to the authorizer
func ValidateCard(card *CardDetails) error {
	if card == nil {
		return &ValidationError{Message: "card details are required"}
	}

	if err := validateLuhn(card.Number); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if err := validateCVV(card.CVV); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if err := validateExpiration(card.Expiration); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if card.Installments < 1 {
		return &ValidationError{Message: "installments must be at least 1"}
	}

	return nil
}

// validateLuhn validates a card number using the Luhn algorithm
func validateLuhn(cardNumber string) error {
	var digits []int
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}

	if len(digits) < 13 || len(digits) > 19 {
		return fmt.Errorf("invalid card number length: must be 13-19 digits")
	}

	sum := 0
	isSecond := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]

		if isSecond {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isSecond = !isSecond
	}

	if sum%10 != 0 {
		return fmt.Errorf("invalid card number: failed Luhn check")
	}

	return nil
}

// validateCVV checks if CVV format is valid
func validateCVV(cvv string) error {
	if len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("invalid CVV: must be 3 or 4 digits")
	}

	for _, r := range cvv {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid CVV: must contain only digits")
		}
	}

	return nil
}

// validateExpiration checks an MM/YYYY expiration date
func validateExpiration(expiration string) error {
	parts := strings.Split(expiration, "/")
	if len(parts) != 2 {
		return fmt.Errorf("invalid expiration date: must be MM/YYYY")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("invalid expiration month: must be between 01 and 12")
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return fmt.Errorf("invalid expiration year: must be 4 digits")
	}

	now := time.Now()
	currentYear := now.Year()
	currentMonth := int(now.Month())

	if year < currentYear || (year == currentYear && month < currentMonth) {
		return fmt.Errorf("card expired: %02d/%d", month, year)
	}

	return nil
}
