package controllers

import (
	"context"
	"net/url"
)

//go:generate mockery --case=snake --name=ClientCtrl
//go:generate mockery --case=snake --name=TgmCtrl

type ClientCtrl interface {
	Send(ctx context.Context, method string, url *url.URL, body []byte) ([]byte, error)
}

type TgmCtrl interface {
	Send(text string) error
}
