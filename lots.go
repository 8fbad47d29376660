package coinfolio

// lot is a remaining open quantity originating from one buy trade, used
// for cost basis calculations.
type lot struct {
	Quantity Quantity
	Price    Money
}

// lots is the open-lot queue, oldest first. That ordering is the FIFO
// invariant: sells always consume the head.
type lots []lot

// match consumes quantityToSell from the oldest lots and returns the
// remaining queue together with the realized profit delta, which is
// (sellPrice - lotPrice) x consumed for every consumed portion.
//
// The receiver is never mutated: the returned queue is a fresh slice, so a
// caller can thread it through successive sells (or share the input across
// goroutines) without aliasing surprises.
//
// When the queue runs out before quantityToSell does, the unmatched
// remainder is dropped: it contributes no realized profit. That happens
// when the trade history window does not cover every buy, and it is a
// policy, not an error.
func (l lots) match(quantityToSell Quantity, sellPrice Money) (lots, Money) {
	remaining := make(lots, 0, len(l))
	realized := M(0, sellPrice.Currency())

	for _, currentLot := range l {
		if !quantityToSell.IsPositive() {
			remaining = append(remaining, currentLot)
			continue
		}

		consumed := currentLot.Quantity.Min(quantityToSell)
		realized = realized.Add(sellPrice.Sub(currentLot.Price).Mul(consumed))
		quantityToSell = quantityToSell.Sub(consumed)

		if left := currentLot.Quantity.Sub(consumed); left.IsPositive() {
			// Partial sale from this lot
			remaining = append(remaining, lot{Quantity: left, Price: currentLot.Price})
		}
	}
	return remaining, realized
}

// totals sums the quantity and the cost (quantity x price) of the open lots.
func (l lots) totals(quote string) (Quantity, Money) {
	quantity := Q(0)
	cost := M(0, quote)
	for _, currentLot := range l {
		quantity = quantity.Add(currentLot.Quantity)
		cost = cost.Add(currentLot.Price.Mul(currentLot.Quantity))
	}
	return quantity, cost
}
