package models

import (
	"testing"
	"time"

	"github.com/bonus-office/internal/constants"
)

func validBonus() Bonus {
	now := time.Now()
	return Bonus{
		Name:                  "Welcome Pack",
		Event:                 constants.BonusEventDeposit,
		Status:                constants.BonusStatusDraft,
		AvailabilityStartDate: now.Add(-time.Hour),
		AvailabilityEndDate:   now.Add(24 * time.Hour),
		Project:               constants.ProjectAll,
	}
}

func TestBonusAvailableNowBoundariesInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	bonus := Bonus{AvailabilityStartDate: start, AvailabilityEndDate: end}

	if !bonus.AvailableNow(start) {
		t.Fatalf("expected bonus available at window start")
	}
	if !bonus.AvailableNow(end) {
		t.Fatalf("expected bonus available at window end")
	}
	if bonus.AvailableNow(start.Add(-time.Second)) {
		t.Fatalf("expected bonus unavailable before window start")
	}
	if bonus.AvailableNow(end.Add(time.Second)) {
		t.Fatalf("expected bonus unavailable after window end")
	}
}

func TestBonusExpiredStrictlyAfterEnd(t *testing.T) {
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	bonus := Bonus{AvailabilityEndDate: end}

	if bonus.Expired(end) {
		t.Fatalf("bonus must not count as expired when now equals window end")
	}
	if !bonus.Expired(end.Add(time.Second)) {
		t.Fatalf("expected bonus expired after window end")
	}
}

func TestBonusActiveRequiresStatusAndWindow(t *testing.T) {
	now := time.Now()
	bonus := validBonus()
	bonus.Status = constants.BonusStatusActive
	if !bonus.Active(now) {
		t.Fatalf("expected active bonus inside window")
	}

	bonus.Status = constants.BonusStatusDraft
	if bonus.Active(now) {
		t.Fatalf("draft bonus must not be active")
	}

	bonus = validBonus()
	bonus.Status = constants.BonusStatusActive
	bonus.AvailabilityStartDate = now.Add(time.Hour)
	bonus.AvailabilityEndDate = now.Add(2 * time.Hour)
	if bonus.Active(now) {
		t.Fatalf("bonus outside window must not be active")
	}
}

func TestBonusValidateRequiredFields(t *testing.T) {
	bonus := Bonus{}
	errs := bonus.Validate()
	if !errs.Any() {
		t.Fatalf("expected validation errors for empty bonus")
	}
	for _, field := range []string{"name", "event", "status", "availability_start_date", "availability_end_date"} {
		if len(errs[field]) == 0 {
			t.Fatalf("expected error for field %q, got %v", field, errs)
		}
	}
}

func TestBonusValidateWindowOrder(t *testing.T) {
	bonus := validBonus()
	bonus.AvailabilityEndDate = bonus.AvailabilityStartDate
	errs := bonus.Validate()
	found := false
	for _, msg := range errs["availability_end_date"] {
		if msg == "must be after availability_start_date" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected window order error, got %v", errs)
	}
}

func TestBonusValidateCurrencyMinimumDepositsOnlyForDeposit(t *testing.T) {
	bonus := validBonus()
	bonus.Event = constants.BonusEventManual
	bonus.CurrencyMinimumDeposits = MoneyMap{"USD": NewMoneyFromFloat(10)}
	errs := bonus.Validate()
	if len(errs["currency_minimum_deposits"]) != 1 ||
		errs["currency_minimum_deposits"][0] != "is only allowed for deposit bonuses" {
		t.Fatalf("expected deposit-only error, got %v", errs)
	}
}

func TestBonusValidateCurrencyMinimumDepositsRules(t *testing.T) {
	bonus := validBonus()
	bonus.Currencies = StringArray{"USD"}
	bonus.CurrencyMinimumDeposits = MoneyMap{
		"USD": NewMoneyFromFloat(0),
		"XBT": NewMoneyFromFloat(5),
	}
	errs := bonus.Validate()
	messages := errs["currency_minimum_deposits"]
	want := map[string]bool{
		"amount for USD must be greater than 0": false,
		"XBT is not among bonus currencies":     false,
		"XBT is not a supported currency":       false,
	}
	for _, msg := range messages {
		if _, ok := want[msg]; ok {
			want[msg] = true
		}
	}
	for msg, seen := range want {
		if !seen {
			t.Fatalf("missing expected message %q, got %v", msg, messages)
		}
	}
}

func TestBonusRewardTypesFixedOrder(t *testing.T) {
	bonus := validBonus()
	bonus.FreechipRewards = []FreechipReward{{ChipsCount: 1, ChipValue: NewMoneyFromFloat(5)}}
	bonus.FreespinRewards = []FreespinReward{{SpinsCount: 20}}
	amount := NewMoneyFromFloat(50)
	bonus.BonusRewards = []BonusReward{{Amount: &amount}}

	types := bonus.RewardTypes()
	want := []string{
		constants.RewardTypeBonus,
		constants.RewardTypeFreespin,
		constants.RewardTypeFreechip,
	}
	if len(types) != len(want) {
		t.Fatalf("reward types want %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("reward types want %v, got %v", want, types)
		}
	}
}

func TestBonusDisplayCodeFallback(t *testing.T) {
	bonus := validBonus()
	bonus.Code = "WELCOME100"
	if got := bonus.DisplayCode(); got != "WELCOME100" {
		t.Fatalf("display code want WELCOME100, got %q", got)
	}

	reward := FreespinReward{SpinsCount: 10}
	reward.SetConfigCode("FREESPIN50")
	bonus.FreespinRewards = []FreespinReward{reward}
	if got := bonus.DisplayCode(); got != "FREESPIN50" {
		t.Fatalf("display code want reward override FREESPIN50, got %q", got)
	}
}

func TestBonusDisplayCurrencyFallback(t *testing.T) {
	bonus := validBonus()
	if got := bonus.DisplayCurrency(); got != "" {
		t.Fatalf("display currency want empty, got %q", got)
	}

	bonus.Currencies = StringArray{"EUR", "USD"}
	if got := bonus.DisplayCurrency(); got != "EUR" {
		t.Fatalf("display currency want first bonus currency EUR, got %q", got)
	}

	reward := BonusReward{}
	reward.SetConfigCurrency("NOK")
	bonus.BonusRewards = []BonusReward{reward}
	if got := bonus.DisplayCurrency(); got != "NOK" {
		t.Fatalf("display currency want reward override NOK, got %q", got)
	}
}

func TestBonusTagsArrayRoundtrip(t *testing.T) {
	bonus := validBonus()
	bonus.SetTagsArray([]string{" welcome ", "", "deposit"})
	if bonus.Tags != "welcome, deposit" {
		t.Fatalf("tags string want %q, got %q", "welcome, deposit", bonus.Tags)
	}
	tags := bonus.TagsArray()
	if len(tags) != 2 || tags[0] != "welcome" || tags[1] != "deposit" {
		t.Fatalf("tags array want [welcome deposit], got %v", tags)
	}
}
