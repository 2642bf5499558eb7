package order

import "time"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// transitions is the full status table. Delivered and cancelled are
// terminal; anything outside this table is rejected.
var transitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentOnDelivery PaymentMethod = "cod"
)

type Address struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every required address field is filled.
func (a Address) Complete() bool {
	return a.FullName != "" && a.Line1 != "" && a.City != "" &&
		a.PostalCode != "" && a.Country != ""
}

// Item is one order line, a snapshot frozen at checkout.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Order is immutable after placement except for Status.
type Order struct {
	OrderNumber     string        `json:"orderNumber"`
	UserID          string        `json:"userId"`
	Items           []Item        `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	Shipping        float64       `json:"shipping"`
	Total           float64       `json:"total"`
	Status          Status        `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress Address       `json:"shippingAddress"`
	CreatedAt       time.Time     `json:"createdAt"`
}
