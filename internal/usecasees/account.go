package usecasees

import (
	"alpaca/internal/controllers"
	"alpaca/models"
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

type accountUseCase struct {
	upstream

	url string
}

func NewAccountUseCase(
	client controllers.ClientCtrl,
	url string,
	metrics Metrics,
	logger *logrus.Logger,
) *accountUseCase {
	return &accountUseCase{
		upstream: upstream{
			clientController: client,
			metrics:          metrics,
			logger:           logger,
		},
		url: url,
	}
}

func (u *accountUseCase) GetAccount(ctx context.Context) (*models.Account, error) {
	target, err := buildURL(u.url, nil, accountUrlPath)
	if err != nil {
		return nil, err
	}

	var account models.Account
	if err := u.do(ctx, http.MethodGet, target, nil, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (u *accountUseCase) GetClock(ctx context.Context) (*models.Clock, error) {
	target, err := buildURL(u.url, nil, clockUrlPath)
	if err != nil {
		return nil, err
	}

	var clock models.Clock
	if err := u.do(ctx, http.MethodGet, target, nil, &clock); err != nil {
		return nil, err
	}

	return &clock, nil
}
