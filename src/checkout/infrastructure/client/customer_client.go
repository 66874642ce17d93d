package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObligationRequest representa el request para registrar una deuda de fiado
type ObligationRequest struct {
	SaleID string          `json:"sale_id"`
	Amount decimal.Decimal `json:"amount"`
}

// LoyaltyAccrualRequest representa el request para acreditar puntos
type LoyaltyAccrualRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// customerResponse es la respuesta genérica de customer-service
type customerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CustomerClient cliente HTTP para comunicarse con customer-service
// Cubre las dos responsabilidades de cliente que dispara el checkout:
// obligaciones de fiado (deferred) y acumulación de puntos (cash/card)
type CustomerClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewCustomerClient crea una nueva instancia del cliente
func NewCustomerClient() *CustomerClient {
	baseURL := os.Getenv("CUSTOMER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://customer-service:8082" // Default para entorno Docker
	}

	return &CustomerClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// CreateDeferredObligation registra la deuda del cliente por el total de la venta
// Las reglas del libro de fiado (vencimientos, intereses) son del colaborador
func (c *CustomerClient) CreateDeferredObligation(ctx context.Context, customerID, saleID uuid.UUID, amount decimal.Decimal) error {
	path := fmt.Sprintf("/api/v1/customers/%s/obligations", customerID)
	return c.post(ctx, path, ObligationRequest{SaleID: saleID.String(), Amount: amount})
}

// AccrueLoyalty acredita puntos proporcionales al total de la venta
// La proporción puntos/monto la decide el colaborador
func (c *CustomerClient) AccrueLoyalty(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal) error {
	path := fmt.Sprintf("/api/v1/customers/%s/loyalty/accruals", customerID)
	return c.post(ctx, path, LoyaltyAccrualRequest{Amount: amount})
}

func (c *CustomerClient) post(ctx context.Context, path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling customer-service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading customer-service response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("customer-service returned status %d: %s", resp.StatusCode, string(body))
	}

	var custResp customerResponse
	if err := json.Unmarshal(body, &custResp); err != nil {
		return fmt.Errorf("error decoding customer-service response: %w", err)
	}
	if !custResp.Success {
		return fmt.Errorf("customer-service rejected operation: %s", custResp.Message)
	}

	return nil
}
