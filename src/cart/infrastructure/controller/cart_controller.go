package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pos/src/cart/application/request"
	"pos/src/cart/application/response"
	"pos/src/cart/domain/entity"
	"pos/src/cart/infrastructure/cache"
	"pos/src/cart/infrastructure/session"
)

// CartController maneja las peticiones HTTP del carrito de caja
// Cada endpoint muta el carrito de la sesión y retorna los totales nuevos:
// los totales nunca pueden quedar en contradicción con las líneas
type CartController struct {
	sessions *session.Store
	products *cache.ProductCache
}

// NewCartController crea una nueva instancia del controlador
func NewCartController(sessions *session.Store, products *cache.ProductCache) *CartController {
	return &CartController{
		sessions: sessions,
		products: products,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *CartController) RegisterRoutes(router *gin.RouterGroup) {
	carts := router.Group("/pos/carts")
	{
		carts.POST("", c.CreateCart)
		carts.GET("/:cart_id", c.GetCart)
		carts.DELETE("/:cart_id", c.ClearCart)
		carts.POST("/:cart_id/lines", c.AddLine)
		carts.PUT("/:cart_id/lines/:product_id", c.SetQuantity)
		carts.DELETE("/:cart_id/lines/:product_id", c.RemoveLine)
		carts.PUT("/:cart_id/lines/:product_id/discount", c.SetLineDiscount)
		carts.PUT("/:cart_id/discount", c.SetOrderDiscount)
		carts.PUT("/:cart_id/tax-rate", c.SetTaxRate)
		carts.PUT("/:cart_id/customer", c.SetCustomer)
		carts.PUT("/:cart_id/payment-method", c.SetPaymentMethod)
	}

	log.Println("Rutas Cart disponibles:")
	log.Println("  POST   /api/v1/pos/carts")
	log.Println("  GET    /api/v1/pos/carts/:cart_id")
	log.Println("  DELETE /api/v1/pos/carts/:cart_id")
	log.Println("  POST   /api/v1/pos/carts/:cart_id/lines")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/lines/:product_id")
	log.Println("  DELETE /api/v1/pos/carts/:cart_id/lines/:product_id")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/lines/:product_id/discount")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/discount")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/tax-rate")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/customer")
	log.Println("  PUT    /api/v1/pos/carts/:cart_id/payment-method")
}

// CreateCart abre una sesión de caja nueva con un carrito vacío
func (c *CartController) CreateCart(ctx *gin.Context) {
	id, cart := c.sessions.Create()
	ctx.JSON(http.StatusCreated, response.FromCart(id, cart))
}

// GetCart retorna el estado completo del carrito
func (c *CartController) GetCart(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// ClearCart vuelve el carrito al estado inicial vacío
func (c *CartController) ClearCart(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}
	cart.Clear()
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// AddLine agrega un producto; cantidades repetidas del mismo producto se acumulan
func (c *CartController) AddLine(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	var req request.AddLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, found := c.products.Get(req.ProductID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	cart.AddLine(product, req.Quantity)
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetQuantity fija la cantidad de una línea; cantidad <= 0 la elimina
func (c *CartController) SetQuantity(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	productID, ok := c.productID(ctx)
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart.SetQuantity(productID, req.Quantity)
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// RemoveLine elimina la línea del producto; no falla si no existe
func (c *CartController) RemoveLine(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	productID, ok := c.productID(ctx)
	if !ok {
		return
	}

	cart.RemoveLine(productID)
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetLineDiscount sobreescribe el descuento de una línea
func (c *CartController) SetLineDiscount(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	productID, ok := c.productID(ctx)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := cart.SetLineDiscount(productID, req.Value, entity.DiscountMode(req.Mode))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, entity.ErrLineNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetOrderDiscount sobreescribe el descuento a nivel de orden
func (c *CartController) SetOrderDiscount(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := cart.SetOrderDiscount(req.Value, entity.DiscountMode(req.Mode)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetTaxRate sobreescribe la tasa de impuesto del carrito
func (c *CartController) SetTaxRate(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	var req request.TaxRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := cart.SetTaxRate(req.Rate); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetCustomer asigna o quita el cliente de la venta
func (c *CartController) SetCustomer(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	var req request.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart.SetCustomer(req.CustomerID)
	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

// SetPaymentMethod asigna el método de pago
func (c *CartController) SetPaymentMethod(ctx *gin.Context) {
	id, cart, ok := c.cart(ctx)
	if !ok {
		return
	}

	var req request.PaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cart.SetPaymentMethod(entity.PaymentMethod(req.Method)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response.FromCart(id, cart))
}

func (c *CartController) cart(ctx *gin.Context) (string, *entity.Cart, bool) {
	id := ctx.Param("cart_id")
	cart, found := c.sessions.Get(id)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart session not found"})
		return "", nil, false
	}
	return id, cart, true
}

func (c *CartController) productID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id format"})
		return uuid.Nil, false
	}
	return id, true
}
