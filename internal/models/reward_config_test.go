package models

import (
	"testing"

	"github.com/bonus-office/internal/constants"
)

func TestMaxWinTypeCaseSensitive(t *testing.T) {
	cases := []struct {
		maxWin string
		want   string
	}{
		{maxWin: "10x", want: constants.MaxWinTypeMultiplier},
		{maxWin: "10X", want: constants.MaxWinTypeFixed},
		{maxWin: "500", want: constants.MaxWinTypeFixed},
		{maxWin: "", want: constants.MaxWinTypeFixed},
	}
	for _, item := range cases {
		config := RewardConfig{}
		config.SetMaxWin(item.maxWin)
		if got := config.MaxWinType(); got != item.want {
			t.Fatalf("max win type for %q want %q, got %q", item.maxWin, item.want, got)
		}
	}
}

func TestFormatMaxWinEmptyShowsNoLimit(t *testing.T) {
	config := RewardConfig{}
	if got := config.FormatMaxWin(); got != constants.FormatNoLimit {
		t.Fatalf("format max win want %q, got %q", constants.FormatNoLimit, got)
	}
	config.SetMaxWin("250")
	if got := config.FormatMaxWin(); got != "250" {
		t.Fatalf("format max win want 250, got %q", got)
	}
}

func TestBetLevelForCurrencyOverrideAndFallback(t *testing.T) {
	config := RewardConfig{}
	config.SetBetLevel(0.5)
	config.SetBetLevelForCurrency("EUR", 2)

	if got := config.BetLevelForCurrency("eur"); got != 2 {
		t.Fatalf("bet level for eur want override 2, got %v", got)
	}
	if got := config.BetLevelForCurrency("USD"); got != 0.5 {
		t.Fatalf("bet level for USD want scalar fallback 0.5, got %v", got)
	}
}

func TestGamesAcceptsStringAndArrayForms(t *testing.T) {
	config := RewardConfig{Config: JSON{"games": "Book of Ra, , Starburst"}}
	games := config.Games()
	if len(games) != 2 || games[0] != "Book of Ra" || games[1] != "Starburst" {
		t.Fatalf("games from comma string want [Book of Ra Starburst], got %v", games)
	}

	config = RewardConfig{Config: JSON{"games": []interface{}{"Gonzo", " Dead or Alive "}}}
	games = config.Games()
	if len(games) != 2 || games[0] != "Gonzo" || games[1] != "Dead or Alive" {
		t.Fatalf("games from loose array want [Gonzo Dead or Alive], got %v", games)
	}

	config = RewardConfig{}
	config.SetGames("Reactoonz")
	games = config.Games()
	if len(games) != 1 || games[0] != "Reactoonz" {
		t.Fatalf("games after setter want [Reactoonz], got %v", games)
	}
}

func TestSetAdvancedParamAllowlist(t *testing.T) {
	config := RewardConfig{}
	config.SetAdvancedParam("duration", 7)
	config.SetAdvancedParam("definitely_not_allowed", true)

	if got := config.AdvancedParam("duration"); CoerceInt(got) != 7 {
		t.Fatalf("advanced param duration want 7, got %v", got)
	}
	if got := config.AdvancedParam("definitely_not_allowed"); got != nil {
		t.Fatalf("unknown advanced param must be silently dropped, got %v", got)
	}
	if len(config.AdvancedParams()) != 1 {
		t.Fatalf("advanced params want single entry, got %v", config.AdvancedParams())
	}
}

func TestFormatLimitsForDetachedReward(t *testing.T) {
	ownership := BonusOwnership{}
	if got := ownership.FormatNoMore(); got != constants.FormatUnlimited {
		t.Fatalf("no_more fallback want %q, got %q", constants.FormatUnlimited, got)
	}
	if got := ownership.FormatTotallyNoMore(); got != constants.FormatUnlimited {
		t.Fatalf("totally_no_more fallback want %q, got %q", constants.FormatUnlimited, got)
	}

	limit := 3
	ownership.Bonus = &Bonus{NoMore: "1 per day", TotallyNoMore: &limit}
	if got := ownership.FormatNoMore(); got != "1 per day" {
		t.Fatalf("no_more want %q, got %q", "1 per day", got)
	}
	if got := ownership.FormatTotallyNoMore(); got != "3" {
		t.Fatalf("totally_no_more want 3, got %q", got)
	}
}

func TestFormatMoneyAndMultiplier(t *testing.T) {
	if got := FormatMoney(nil, "USD"); got != constants.FormatNA {
		t.Fatalf("format money for nil want %q, got %q", constants.FormatNA, got)
	}
	amount := NewMoneyFromFloat(100)
	if got := FormatMoney(&amount, "USD"); got != "100.00 USD" {
		t.Fatalf("format money want %q, got %q", "100.00 USD", got)
	}
	if got := FormatMoney(&amount, ""); got != "100.00" {
		t.Fatalf("format money without currency want %q, got %q", "100.00", got)
	}

	if got := FormatMultiplier(nil); got != constants.FormatNA {
		t.Fatalf("format multiplier for nil want %q, got %q", constants.FormatNA, got)
	}
	multiplier := 2.5
	if got := FormatMultiplier(&multiplier); got != "×2.5" {
		t.Fatalf("format multiplier want %q, got %q", "×2.5", got)
	}
}
