package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees/structs"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	accountUrlPath   = "/v2/account"
	clockUrlPath     = "/v2/clock"
	ordersUrlPath    = "/v2/orders"
	positionsUrlPath = "/v2/positions"

	stockQuotesUrlPath     = "/v2/stocks"
	optionContractsUrlPath = "/v2/options/contracts"
	optionSnapshotsUrlPath = "/v1beta1/options/snapshots"
	optionQuotesUrlPath    = "/v1beta1/options/quotes/latest"
)

type Metrics map[structs.MetricConst]prometheus.Counter

// upstream holds what every use case needs to talk to the brokerage.
type upstream struct {
	clientController controllers.ClientCtrl

	metrics Metrics

	logger *logrus.Logger

	notifications sync.WaitGroup
}

func (u *upstream) do(ctx context.Context, method string, target *url.URL, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return pkgerrors.Wrap(err, "encode upstream payload")
		}
	}

	resp, err := u.clientController.Send(ctx, method, target, body)
	if err != nil {
		var upErr *controllers.UpstreamError
		if errors.As(err, &upErr) {
			u.inc(structs.MetricUpstreamError)
		}

		return err
	}

	if out == nil || len(resp) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp, out); err != nil {
		return pkgerrors.Wrapf(err, "decode upstream response %s", target.Path)
	}

	return nil
}

func (u *upstream) inc(m structs.MetricConst) {
	if counter, ok := u.metrics[m]; ok {
		counter.Inc()
	}
}

func buildURL(base string, query url.Values, elem ...string) (*url.URL, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse upstream url")
	}

	baseURL.Path = path.Join(append([]string{baseURL.Path}, elem...)...)
	if query != nil {
		baseURL.RawQuery = query.Encode()
	}

	return baseURL, nil
}

// notify delivers text in the background so a slow chat never holds up the
// response for an action the brokerage already accepted.
func (u *upstream) notify(tgm controllers.TgmCtrl, text string) {
	if tgm == nil {
		return
	}

	u.notifications.Add(1)
	go func() {
		defer u.notifications.Done()

		if err := tgm.Send(text); err != nil {
			u.logger.WithField("method", "notify").WithError(err).Warn("telegram notification failed")
		}
	}()
}

// waitNotifications blocks until every pending notification is sent.
func (u *upstream) waitNotifications() {
	u.notifications.Wait()
}
