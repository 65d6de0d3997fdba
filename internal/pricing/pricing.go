// Package pricing computes the price of a key purchase.
//
// Keys are sold in batches of five or more, with a discounted unit price
// from ten keys upward. All amounts are whole VND.
package pricing

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MinQuantity is the smallest batch the shop sells.
	MinQuantity = 5

	// DiscountQuantity is the batch size at which the lower unit price applies.
	DiscountQuantity = 10

	standardUnitPrice   = 275000
	discountedUnitPrice = 250000
)

// ErrQuantityTooLow is returned for orders below MinQuantity.
var ErrQuantityTooLow = errors.New("quantity below minimum order size")

// Quote is the price breakdown for a single order.
type Quote struct {
	Quantity   int
	UnitPrice  int64
	TotalPrice int64
}

// NewQuote prices an order of the given number of keys.
func NewQuote(quantity int) (Quote, error) {
	if quantity < MinQuantity {
		return Quote{}, ErrQuantityTooLow
	}

	unit := int64(standardUnitPrice)
	if quantity >= DiscountQuantity {
		unit = discountedUnitPrice
	}

	return Quote{
		Quantity:   quantity,
		UnitPrice:  unit,
		TotalPrice: unit * int64(quantity),
	}, nil
}

var vndPrinter = message.NewPrinter(language.English)

// FormatVND renders an amount with thousands separators, e.g. 3,000,000.
func FormatVND(amount int64) string {
	return vndPrinter.Sprintf("%d", amount)
}
