package order

// TrackingInfo is the public read-only projection returned by order tracking.
// It is derived purely from the current status via fixed lookup tables.
type TrackingInfo struct {
	OrderNumber string `json:"order_number"`
	Status      Status `json:"status"`
	Progress    int    `json:"progress"` // percent
	NextStep    string `json:"next_step"`
	IsPaid      bool   `json:"is_paid"`
	IsDelivered bool   `json:"is_delivered"`
}

var statusProgress = map[Status]int{
	StatusPending:    10,
	StatusProcessing: 30,
	StatusShipped:    70,
	StatusDelivered:  100,
	StatusCancelled:  0,
	StatusRefunded:   0,
}

var statusNextStep = map[Status]string{
	StatusPending:    "your order is awaiting confirmation",
	StatusProcessing: "your order is being prepared for shipment",
	StatusShipped:    "your order is on its way",
	StatusDelivered:  "your order has been delivered",
	StatusCancelled:  "this order was cancelled",
	StatusRefunded:   "this order was refunded",
}

// Tracking builds the projection for the order's current status
func (o *Order) Tracking() TrackingInfo {
	return TrackingInfo{
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Progress:    statusProgress[o.Status],
		NextStep:    statusNextStep[o.Status],
		IsPaid:      o.IsPaid,
		IsDelivered: o.IsDelivered,
	}
}
