package checkout

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// CustomerDetails is the contact step of checkout.
type CustomerDetails struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// PaymentDetails is the card step of checkout. It is validated and reduced to the
// last four digits; the full values are never forwarded or logged.
type PaymentDetails struct {
	CardNumber string `json:"card_number" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	CardName   string `json:"card_name" validate:"required"`
}

// String keeps card data out of formatted output.
func (p PaymentDetails) String() string {
	return fmt.Sprintf("card ending %s", CardLast4(p.CardNumber))
}

// Normalize trims surrounding whitespace from every field.
func (c CustomerDetails) Normalize() CustomerDetails {
	return CustomerDetails{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// Normalize trims surrounding whitespace from every field.
func (p PaymentDetails) Normalize() PaymentDetails {
	return PaymentDetails{
		CardNumber: strings.TrimSpace(p.CardNumber),
		ExpiryDate: strings.TrimSpace(p.ExpiryDate),
		CVV:        strings.TrimSpace(p.CVV),
		CardName:   strings.TrimSpace(p.CardName),
	}
}

// ValidateDetails checks both checkout steps and reports every failing field, keyed
// as "customer.<field>" or "payment.<field>".
func ValidateDetails(customer CustomerDetails, payment PaymentDetails) error {
	violations := map[string]string{}
	collect("customer", validate.Struct(customer.Normalize()), violations)
	collect("payment", validate.Struct(payment.Normalize()), violations)
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing or invalid checkout details for %d field(s)", len(violations))).WithDetails(violations)
}

// CardLast4 returns the last four digits of a card number, ignoring separators.
func CardLast4(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}

func collect(prefix string, err error, into map[string]string) {
	if err == nil {
		return
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		into[prefix] = "is invalid"
		return
	}
	for _, fieldErr := range errs {
		into[prefix+"."+fieldErr.Field()] = message(fieldErr)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}
