package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a client for the Asaas v3 API. timeout bounds every call.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "asaas")),
	}
}

// CreateCharge creates a payment. A rejection by the gateway is returned as *APIError.
func (c *Client) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	var charge Charge
	if err := c.do(ctx, http.MethodPost, "/payments", newChargePayload(req), &charge); err != nil {
		return nil, fmt.Errorf("create charge for %s: %w", req.ExternalReference, err)
	}

	c.log.Info("Charge created",
		zap.String("charge_id", charge.ID),
		zap.String("external_reference", charge.ExternalReference),
		zap.String("billing_type", charge.BillingType),
		zap.String("status", charge.Status),
	)
	return &charge, nil
}

// GetPixQrCode fetches the QR code of a PIX charge.
func (c *Client) GetPixQrCode(ctx context.Context, chargeID string) (*PixQrCode, error) {
	var qr PixQrCode
	path := "/payments/" + url.PathEscape(chargeID) + "/pixQrCode"
	if err := c.do(ctx, http.MethodGet, path, nil, &qr); err != nil {
		return nil, fmt.Errorf("get pix qr code for %s: %w", chargeID, err)
	}
	return &qr, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("access_token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Gateway request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("Gateway response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Payload: rawPayload(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func rawPayload(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	quoted, _ := json.Marshal(string(raw))
	return json.RawMessage(quoted)
}
