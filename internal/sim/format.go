package sim

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders d rounded to whole units with thousands separators, e.g. $1,234,567.
func FormatMoney(d decimal.Decimal) string {
	units := d.Round(0).IntPart()
	if units < 0 {
		return moneyPrinter.Sprintf("-$%d", -units)
	}
	return moneyPrinter.Sprintf("$%d", units)
}
