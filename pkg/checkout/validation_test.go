package checkout

import (
	"fmt"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func validCustomer() CustomerDetails {
	return CustomerDetails{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}
}

func validPayment() PaymentDetails {
	return PaymentDetails{CardNumber: "4242 4242 4242 4242", ExpiryDate: "12/30", CVV: "123", CardName: "Ada Lovelace"}
}

func TestValidateDetailsAcceptsCompleteInput(t *testing.T) {
	if err := ValidateDetails(validCustomer(), validPayment()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateDetailsReportsEveryField(t *testing.T) {
	customer := validCustomer()
	customer.Name = "   "
	customer.Email = "not-an-email"
	payment := validPayment()
	payment.CVV = ""

	err := ValidateDetails(customer, payment)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	want := map[string]string{
		"customer.name":  "is required",
		"customer.email": "must be a valid email",
		"payment.cvv":    "is required",
	}
	if len(details) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), details)
	}
	for field, msg := range want {
		if details[field] != msg {
			t.Fatalf("field %s: expected %q, got %q", field, msg, details[field])
		}
	}
}

func TestCardLast4(t *testing.T) {
	cases := map[string]string{
		"4242 4242 4242 4242": "4242",
		"4000-0000-0000-0077": "0077",
		"12":                  "12",
		"":                    "",
	}
	for in, want := range cases {
		if got := CardLast4(in); got != want {
			t.Fatalf("CardLast4(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPaymentDetailsFormattingHidesCard(t *testing.T) {
	out := fmt.Sprintf("%v", validPayment())
	if out != "card ending 4242" {
		t.Fatalf("unexpected formatted payment %q", out)
	}
}
