package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos/src/cart/infrastructure/session"
	"pos/src/checkout/application/usecase"
	"pos/src/checkout/domain/entity"
)

// CheckoutController maneja las peticiones HTTP del commit de venta
type CheckoutController struct {
	checkoutUC  *usecase.CheckoutUseCase
	listSalesUC *usecase.ListSalesUseCase
	getSaleUC   *usecase.GetSaleUseCase
	sessions    *session.Store
}

// NewCheckoutController crea una nueva instancia del controlador
func NewCheckoutController(
	checkoutUC *usecase.CheckoutUseCase,
	listSalesUC *usecase.ListSalesUseCase,
	getSaleUC *usecase.GetSaleUseCase,
	sessions *session.Store,
) *CheckoutController {
	return &CheckoutController{
		checkoutUC:  checkoutUC,
		listSalesUC: listSalesUC,
		getSaleUC:   getSaleUC,
		sessions:    sessions,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *CheckoutController) RegisterRoutes(router *gin.RouterGroup) {
	pos := router.Group("/pos")
	{
		pos.POST("/carts/:cart_id/checkout", c.Checkout)
		pos.GET("/sales", c.ListSales)
		pos.GET("/sales/:sale_id", c.GetSale)
	}

	log.Println("Rutas Checkout disponibles:")
	log.Println("  POST   /api/v1/pos/carts/:cart_id/checkout  ⭐ (Sale Commit)")
	log.Println("  GET    /api/v1/pos/sales")
	log.Println("  GET    /api/v1/pos/sales/:sale_id")
}

// Checkout ejecuta el commit de la venta para el carrito de la sesión
// Un commit exitoso SIEMPRE confirma la venta al operador, aunque algún
// efecto lateral haya quedado degradado (ver soft_failures en la respuesta)
func (c *CheckoutController) Checkout(ctx *gin.Context) {
	if c.checkoutUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "checkout not available (database not configured)",
		})
		return
	}

	cartID := ctx.Param("cart_id")
	cart, found := c.sessions.Get(cartID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart session not found"})
		return
	}

	cashierID := ctx.GetHeader("X-Cashier-ID")
	if cashierID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Cashier-ID header is required"})
		return
	}

	result, err := c.checkoutUC.Execute(ctx.Request.Context(), cart, cashierID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrEmptyCart) || errors.Is(err, entity.ErrCustomerRequired) {
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// El carrito ya se materializó en una venta: la sesión vuelve a vacío
	cart.Clear()

	ctx.JSON(http.StatusCreated, usecase.ToSaleResponse(result.Sale, result.SoftFailures))
}

// ListSales lista las ventas confirmadas (para el reporte de caja)
func (c *CheckoutController) ListSales(ctx *gin.Context) {
	if c.listSalesUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sales list not available (database not configured)",
		})
		return
	}

	sales, err := c.listSalesUC.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}

// GetSale retorna una venta con sus items
func (c *CheckoutController) GetSale(ctx *gin.Context) {
	if c.getSaleUC == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sales not available (database not configured)",
		})
		return
	}

	saleID, err := uuid.Parse(ctx.Param("sale_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale_id format"})
		return
	}

	sale, err := c.getSaleUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, entity.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, sale)
}
