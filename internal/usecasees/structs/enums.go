package structs

type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

type OrderType string

const (
	TypeMarket       OrderType = "market"
	TypeLimit        OrderType = "limit"
	TypeStop         OrderType = "stop"
	TypeStopLimit    OrderType = "stop_limit"
	TypeTrailingStop OrderType = "trailing_stop"
)

type TimeInForce string

const (
	TIFDay TimeInForce = "day"
	TIFGTC TimeInForce = "gtc"
	TIFOPG TimeInForce = "opg"
	TIFCLS TimeInForce = "cls"
	TIFIOC TimeInForce = "ioc"
	TIFFOK TimeInForce = "fok"
)

type PositionIntent string

const (
	BuyToOpen   PositionIntent = "buy_to_open"
	BuyToClose  PositionIntent = "buy_to_close"
	SellToOpen  PositionIntent = "sell_to_open"
	SellToClose PositionIntent = "sell_to_close"
)

type OrderClass string

const (
	ClassSimple OrderClass = "simple"
	ClassMLeg   OrderClass = "mleg"
)

// QueryOrderStatus is the status filter accepted by the order listing.
type QueryOrderStatus string

const (
	QueryOpen   QueryOrderStatus = "open"
	QueryClosed QueryOrderStatus = "closed"
	QueryAll    QueryOrderStatus = "all"
)

type OrderStatus string

const (
	StatusNew                OrderStatus = "new"
	StatusPartiallyFilled    OrderStatus = "partially_filled"
	StatusDoneForDay         OrderStatus = "done_for_day"
	StatusAccepted           OrderStatus = "accepted"
	StatusPendingNew         OrderStatus = "pending_new"
	StatusAcceptedForBidding OrderStatus = "accepted_for_bidding"
	StatusPendingCancel      OrderStatus = "pending_cancel"
	StatusPendingReplace     OrderStatus = "pending_replace"
	StatusStopped            OrderStatus = "stopped"
	StatusSuspended          OrderStatus = "suspended"
	StatusCalculated         OrderStatus = "calculated"
	StatusHeld               OrderStatus = "held"

	StatusFilled   OrderStatus = "filled"
	StatusCanceled OrderStatus = "canceled"
	StatusExpired  OrderStatus = "expired"
	StatusReplaced OrderStatus = "replaced"
	StatusRejected OrderStatus = "rejected"
)

// IsTerminal reports whether an order in this status can no longer change.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusFilled, StatusCanceled, StatusExpired, StatusReplaced, StatusRejected:
		return true
	default:
		return false
	}
}

// Matches reports whether an order in status s belongs to the filter q.
func (q QueryOrderStatus) Matches(s OrderStatus) bool {
	switch q {
	case QueryOpen:
		return !s.IsTerminal()
	case QueryClosed:
		return s.IsTerminal()
	default:
		return true
	}
}
