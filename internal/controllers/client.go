package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	headerApiKeyID     = "APCA-API-KEY-ID"
	headerApiSecretKey = "APCA-API-SECRET-KEY"

	maxErrBodySize = 4096
)

type ClientController struct {
	client *http.Client
	logger *logrus.Logger

	apiKey    string
	secretKey string
}

func NewClientController(
	client *http.Client,
	apiKey string,
	secretKey string,
	logger *logrus.Logger,
) *ClientController {
	return &ClientController{
		client:    client,
		apiKey:    apiKey,
		secretKey: secretKey,
		logger:    logger,
	}
}

// UpstreamError is a non-2xx answer from the brokerage. StatusCode is zero
// when the request never got an answer.
type UpstreamError struct {
	StatusCode int
	Code       int64
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream unavailable: %s", e.Message)
	}

	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (c *ClientController) Send(ctx context.Context, method string, url *url.URL, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "build upstream request")
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add(headerApiKeyID, c.apiKey)
	req.Header.Add(headerApiSecretKey, c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.
			WithField("method", "Send").
			WithField("path", url.Path).
			WithError(err).
			Warn("upstream request failed")

		return nil, &UpstreamError{Message: err.Error()}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respErr, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			return nil, errors.Wrap(err, "read upstream error body")
		}

		upErr := parseUpstreamError(resp.StatusCode, respErr)

		c.logger.
			WithField("method", "Send").
			WithField("path", url.Path).
			WithField("status", upErr.StatusCode).
			WithField("code", upErr.Code).
			Debug(upErr.Message)

		return nil, upErr
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read upstream body")
	}

	return out, nil
}

// parseUpstreamError reads the brokerage error envelope {"code":..,"message":..},
// falling back to the raw body and then to the status text.
func parseUpstreamError(status int, body []byte) *UpstreamError {
	upErr := &UpstreamError{StatusCode: status}

	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		upErr.Code = parsed.Get("code").Int()
		upErr.Message = parsed.Get("message").String()
	}

	if upErr.Message == "" {
		upErr.Message = strings.TrimSpace(string(body))
	}

	if upErr.Message == "" {
		upErr.Message = http.StatusText(status)
	}

	return upErr
}
