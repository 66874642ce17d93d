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
	"github.com/sony/gobreaker/v2"
)

// StockAdjustRequest representa el request para ajustar existencias
type StockAdjustRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

// StockMovementRequest representa el request para el libro de movimientos
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
}

// stockResponse es la respuesta genérica de stock-service
type stockResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StockClient cliente HTTP para comunicarse con stock-service
// El ajuste es atómico del lado del colaborador (costo promedio ponderado
// incluido); este cliente solo transporta el delta.
// Las llamadas pasan por un circuit breaker: si stock-service está caído,
// los pasos soft-fail del checkout fallan rápido en vez de colgar la caja.
type StockClient struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewStockClient crea una nueva instancia del cliente
func NewStockClient() *StockClient {
	baseURL := os.Getenv("STOCK_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://stock-service:8081" // Default para entorno Docker
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "stock-service",
		Timeout: 30 * time.Second,
	})

	return &StockClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		breaker: breaker,
	}
}

// AdjustStock aplica un delta a la existencia del producto (negativo = venta)
func (c *StockClient) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	body := StockAdjustRequest{ProductID: productID.String(), Delta: delta}
	return c.post(ctx, "/api/v1/stock/adjust", body)
}

// RecordMovement agrega una entrada al libro de movimientos de stock
func (c *StockClient) RecordMovement(ctx context.Context, productID uuid.UUID, delta int, reason string) error {
	body := StockMovementRequest{ProductID: productID.String(), Delta: delta, Reason: reason}
	return c.post(ctx, "/api/v1/stock/movements", body)
}

func (c *StockClient) post(ctx context.Context, path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error calling stock-service: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading stock-service response: %w", err)
		}

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("stock-service returned status %d: %s", resp.StatusCode, string(body))
		}

		return body, nil
	})
	if err != nil {
		return err
	}

	var stockResp stockResponse
	if err := json.Unmarshal(respBody, &stockResp); err != nil {
		return fmt.Errorf("error decoding stock-service response: %w", err)
	}
	if !stockResp.Success {
		return fmt.Errorf("stock-service rejected operation: %s", stockResp.Message)
	}

	return nil
}
