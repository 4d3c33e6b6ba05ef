package entity

type Order struct {
	ProductName string  `json:"productName" bson:"productName"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
}

// Subtotal is price times quantity.
func (o Order) Subtotal() float64 {
	return o.Price * float64(o.Quantity)
}

// OrdersTotal sums the subtotals of orders. An empty list totals 0.
func OrdersTotal(orders []Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Subtotal()
	}
	return total
}
