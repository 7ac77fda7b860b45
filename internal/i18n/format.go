package i18n

import (
	"fmt"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF",
	"CNY": "¥",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"PLN": "zł",
	"CZK": "Kč",
	"HUF": "Ft",
	"RUB": "₽",
	"BRL": "R$",
	"MXN": "$",
	"KRW": "₩",
	"SGD": "S$",
	"NZD": "NZ$",
	"ZAR": "R",
	"INR": "₹",
	"THB": "฿",
	"TRY": "₺",
}

// symbol goes after the amount for these
var suffixCurrencies = map[string]bool{
	"SEK": true, "NOK": true, "DKK": true, "PLN": true, "CZK": true, "HUF": true,
}

// FormatPrice renders a whole-unit price with its currency symbol.
func FormatPrice(amount int, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return fmt.Sprintf("$%d", amount)
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}
	if suffixCurrencies[code] {
		return fmt.Sprintf("%d %s", amount, symbol)
	}
	return fmt.Sprintf("%s%d", symbol, amount)
}
