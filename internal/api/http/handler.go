package http

import (
	"alpaca/internal/usecasees/structs"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	useCases UseCases
	logger   *logrus.Logger
}

func NewHandler(u UseCases, l *logrus.Logger) *Handler {
	return &Handler{
		useCases: u,
		logger:   l,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	body := struct {
		Status string `json:"status"`
	}{
		Status: "healthy",
	}

	return c.JSON(body)
}

func (h *Handler) GetAccount(c *fiber.Ctx) error {
	account, err := h.useCases.Account.GetAccount(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(account)
}

func (h *Handler) GetClock(c *fiber.Ctx) error {
	clock, err := h.useCases.Account.GetClock(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(clock)
}

func (h *Handler) SubmitOrder(c *fiber.Ctx) error {
	var req structs.OrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.useCases.Order.Submit(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.useCases.Order.List(c.UserContext(), &structs.OrdersQuery{
		Status:    structs.QueryOrderStatus(c.Query("status")),
		Limit:     c.Query("limit"),
		Direction: strings.ToLower(c.Query("direction")),
	})
	if err != nil {
		return err
	}

	return c.JSON(orders)
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	order, err := h.useCases.Order.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(order)
}

func (h *Handler) CancelOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.useCases.Order.Cancel(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":   "cancelled",
		"order_id": id,
	})
}

func (h *Handler) CancelAllOrders(c *fiber.Ctx) error {
	statuses, err := h.useCases.Order.CancelAll(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":    "cancelled",
		"cancelled": statuses,
	})
}

func (h *Handler) ListPositions(c *fiber.Ctx) error {
	positions, err := h.useCases.Position.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(positions)
}

func (h *Handler) GetPosition(c *fiber.Ctx) error {
	position, err := h.useCases.Position.Get(c.UserContext(), c.Params("symbol"))
	if err != nil {
		return err
	}

	return c.JSON(position)
}

// ClosePosition takes qty or percentage from the query string, falling back
// to a JSON body.
func (h *Handler) ClosePosition(c *fiber.Ctx) error {
	req, err := structs.ParseClosePosition(c.Query("qty"), c.Query("percentage"))
	if err != nil {
		return err
	}

	if req.Empty() && len(c.Body()) > 0 {
		if err := parseBody(c, req); err != nil {
			return err
		}
	}

	order, err := h.useCases.Position.Close(c.UserContext(), c.Params("symbol"), req)
	if err != nil {
		return err
	}

	return c.JSON(order)
}

func (h *Handler) GetQuote(c *fiber.Ctx) error {
	quote, err := h.useCases.Quote.Latest(c.UserContext(), c.Params("symbol"), c.Query("feed"))
	if err != nil {
		return err
	}

	return c.JSON(quote)
}

func (h *Handler) ListOptionContracts(c *fiber.Ctx) error {
	page, err := h.useCases.Option.Contracts(c.UserContext(), &structs.OptionContractsQuery{
		UnderlyingSymbols: c.Query("underlying_symbols"),
		ExpirationDate:    c.Query("expiration_date"),
		ExpirationDateGte: c.Query("expiration_date_gte"),
		ExpirationDateLte: c.Query("expiration_date_lte"),
		RootSymbol:        c.Query("root_symbol"),
		Type:              strings.ToLower(c.Query("type")),
		Style:             strings.ToLower(c.Query("style")),
		StrikePriceGte:    c.Query("strike_price_gte"),
		StrikePriceLte:    c.Query("strike_price_lte"),
		Limit:             c.Query("limit"),
		PageToken:         c.Query("page_token"),
	})
	if err != nil {
		return err
	}

	return c.JSON(page)
}

func (h *Handler) GetOptionContract(c *fiber.Ctx) error {
	contract, err := h.useCases.Option.Contract(c.UserContext(), c.Params("symbol_or_id"))
	if err != nil {
		return err
	}

	return c.JSON(contract)
}

func (h *Handler) GetOptionChain(c *fiber.Ctx) error {
	chain, err := h.useCases.Option.Chain(c.UserContext(), c.Params("underlying"), &structs.OptionChainQuery{
		Type:              strings.ToLower(c.Query("type")),
		StrikePriceGte:    c.Query("strike_price_gte"),
		StrikePriceLte:    c.Query("strike_price_lte"),
		ExpirationDate:    c.Query("expiration_date"),
		ExpirationDateGte: c.Query("expiration_date_gte"),
		ExpirationDateLte: c.Query("expiration_date_lte"),
		RootSymbol:        c.Query("root_symbol"),
	})
	if err != nil {
		return err
	}

	return c.JSON(chain)
}

func (h *Handler) GetOptionQuote(c *fiber.Ctx) error {
	quote, err := h.useCases.Option.Quote(c.UserContext(), c.Params("symbol"))
	if err != nil {
		return err
	}

	return c.JSON(quote)
}

func (h *Handler) GetOptionSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.useCases.Option.Snapshot(c.UserContext(), c.Params("symbol"))
	if err != nil {
		return err
	}

	return c.JSON(snapshot)
}

func (h *Handler) SubmitOptionOrder(c *fiber.Ctx) error {
	var req structs.OptionOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.useCases.Option.SubmitOrder(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) SubmitMultiLegOrder(c *fiber.Ctx) error {
	var req structs.MultiLegOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	order, err := h.useCases.Option.SubmitMultiLeg(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) ExerciseOption(c *fiber.Ctx) error {
	key, err := h.useCases.Option.Exercise(c.UserContext(), c.Params("symbol_or_id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":       "exercised",
		"symbol_or_id": key,
	})
}

// parseBody decodes a JSON body regardless of the declared content type.
func parseBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return &structs.ValidationError{Field: "body", Message: "request body is required"}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &structs.ValidationError{Field: "body", Message: "malformed JSON: " + err.Error()}
	}

	return nil
}
