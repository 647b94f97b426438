package structs

type MetricConst string

const (
	MetricOrderSubmitted  MetricConst = "alpaca_gateway_orders_submitted_total"
	MetricOrderInvalid    MetricConst = "alpaca_gateway_orders_invalid_total"
	MetricOrderCanceled   MetricConst = "alpaca_gateway_orders_canceled_total"
	MetricOrderCancelAll  MetricConst = "alpaca_gateway_orders_cancel_all_total"
	MetricPositionClosed  MetricConst = "alpaca_gateway_positions_closed_total"
	MetricOptionExercised MetricConst = "alpaca_gateway_options_exercised_total"
	MetricUpstreamError   MetricConst = "alpaca_gateway_upstream_errors_total"
)

var MetricList = []MetricConst{
	MetricOrderSubmitted,
	MetricOrderInvalid,
	MetricOrderCanceled,
	MetricOrderCancelAll,
	MetricPositionClosed,
	MetricOptionExercised,
	MetricUpstreamError,
}

func (m MetricConst) ToString() string {
	return string(m)
}
