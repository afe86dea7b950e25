package models

import (
	"testing"
	"time"

	"github.com/bonus-office/internal/constants"
)

func validMarketingRequest() MarketingRequest {
	return MarketingRequest{
		Manager:     "anna.k",
		PromoCode:   "SPRING25",
		Stag:        "stag_10001",
		Status:      constants.MarketingRequestStatusPending,
		RequestType: constants.MarketingRequestTypeStreamer,
	}
}

func TestMarketingRequestNormalizePromoCodes(t *testing.T) {
	request := validMarketingRequest()
	request.PromoCode = "spring25\nvip50,  extra \r\n"
	request.Normalize()
	if request.PromoCode != "SPRING25, VIP50, EXTRA" {
		t.Fatalf("normalized promo_code want %q, got %q", "SPRING25, VIP50, EXTRA", request.PromoCode)
	}

	codes := request.PromoCodes()
	if len(codes) != 3 || codes[0] != "SPRING25" || codes[1] != "VIP50" || codes[2] != "EXTRA" {
		t.Fatalf("promo codes want [SPRING25 VIP50 EXTRA], got %v", codes)
	}
}

func TestMarketingRequestNormalizeStagStripsWhitespace(t *testing.T) {
	request := validMarketingRequest()
	request.Stag = " stag \t100 01\n"
	request.Normalize()
	if request.Stag != "stag10001" {
		t.Fatalf("normalized stag want stag10001, got %q", request.Stag)
	}
}

func TestMarketingRequestValidate(t *testing.T) {
	request := MarketingRequest{
		PartnerEmail: "not-an-email",
		PromoCode:    "BAD-CODE",
		Status:       "unknown",
		RequestType:  "unknown",
	}
	request.Normalize()
	errs := request.Validate()

	for _, field := range []string{"manager", "partner_email", "stag", "status", "request_type"} {
		if len(errs[field]) == 0 {
			t.Fatalf("expected error for field %q, got %v", field, errs)
		}
	}
	found := false
	for _, msg := range errs["promo_code"] {
		if msg == "BAD-CODE must contain only letters, digits and underscores" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected promo code charset error, got %v", errs["promo_code"])
	}
}

func TestMarketingRequestValidateRequiresCode(t *testing.T) {
	request := validMarketingRequest()
	request.PromoCode = " , \n"
	request.Normalize()
	errs := request.Validate()
	if len(errs["promo_code"]) != 1 || errs["promo_code"][0] != "must contain at least one code" {
		t.Fatalf("expected at-least-one-code error, got %v", errs)
	}
}

func TestMarketingRequestTransitions(t *testing.T) {
	request := validMarketingRequest()
	now := time.Now()

	request.Activate(now)
	if request.Status != constants.MarketingRequestStatusActivated {
		t.Fatalf("status after activate want activated, got %q", request.Status)
	}
	if request.ActivationDate == nil || !request.ActivationDate.Equal(now) {
		t.Fatalf("activation date want %v, got %v", now, request.ActivationDate)
	}

	request.Reject()
	if request.Status != constants.MarketingRequestStatusRejected || request.ActivationDate != nil {
		t.Fatalf("reject must clear activation date, got status=%q date=%v", request.Status, request.ActivationDate)
	}

	request.Activate(now)
	request.ResetToPending()
	if request.Status != constants.MarketingRequestStatusPending || request.ActivationDate != nil {
		t.Fatalf("reset must clear activation date, got status=%q date=%v", request.Status, request.ActivationDate)
	}
}
