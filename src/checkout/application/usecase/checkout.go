package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	cartEntity "pos/src/cart/domain/entity"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
	"pos/src/shared/infrastructure/metrics"
)

// stepPolicy define qué pasa cuando un paso del commit falla
type stepPolicy int

const (
	// policyAbort: el fallo aborta toda la secuencia y se propaga al caller
	policyAbort stepPolicy = iota
	// policyContinue: el fallo se registra y la secuencia sigue; no hay rollback
	policyContinue
)

// commitStep es una entrada de la tabla declarativa de pasos del commit
type commitStep struct {
	name   string
	policy stepPolicy
	run    func(ctx context.Context) error
}

// StepFailure es un efecto lateral que falló sin abortar el commit
type StepFailure struct {
	Step string
	Err  error
}

// CheckoutResult es el resultado estructurado del commit
// Sale es la única señal de éxito; SoftFailures lista los efectos laterales
// degradados para que el caller decida si los muestra
type CheckoutResult struct {
	Sale         *entity.Sale
	SoftFailures []StepFailure
}

// Degraded indica si el commit terminó con efectos laterales fallidos
func (r *CheckoutResult) Degraded() bool {
	return len(r.SoftFailures) > 0
}

// CheckoutUseCase es el orquestador del commit de venta
// Ejecuta la secuencia ordenada de escrituras y efectos dependientes con una
// política hard-fail/soft-fail por paso:
//
//	número de recibo        → abort
//	header de venta         → abort
//	items de venta          → abort (el header puede quedar huérfano, ver DESIGN.md)
//	stock por línea         → continue
//	movimiento por línea    → continue
//	obligación diferida     → continue (solo deferred + cliente)
//	acumulación de puntos   → continue (solo cash/card + cliente)
type CheckoutUseCase struct {
	saleRepo    port.SaleRepository
	stockSvc    port.StockService
	customerSvc port.CustomerService
	notifier    port.ViewNotifier
}

// NewCheckoutUseCase crea una nueva instancia del caso de uso
func NewCheckoutUseCase(
	saleRepo port.SaleRepository,
	stockSvc port.StockService,
	customerSvc port.CustomerService,
	notifier port.ViewNotifier,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		saleRepo:    saleRepo,
		stockSvc:    stockSvc,
		customerSvc: customerSvc,
		notifier:    notifier,
	}
}

// Execute ejecuta el commit de la venta: se invoca una vez por checkout
// Los pasos corren estrictamente en orden dentro de la invocación; no hay
// cancelación a mitad de camino ni rollback compensatorio después del header.
func (uc *CheckoutUseCase) Execute(ctx context.Context, cart *cartEntity.Cart, cashierID string) (*CheckoutResult, error) {
	// ========================================================================
	// PRECONDICIONES: se rechazan antes de cualquier escritura
	// ========================================================================
	if cart == nil || cart.IsEmpty() {
		return nil, entity.ErrEmptyCart
	}
	if cart.PaymentMethod().IsDeferred() && cart.CustomerID() == nil {
		return nil, entity.ErrCustomerRequired
	}

	log.Printf("🛒 Checkout - líneas: %d, método: %s, total: %s",
		len(cart.Lines()), cart.PaymentMethod(), cart.Totals().Total)

	plan := uc.buildSteps(cart, cashierID)

	softFailures, err := uc.runSteps(ctx, plan.table)
	if err != nil {
		return nil, err
	}
	sale := *plan.sale

	// Las vistas downstream pueden estar obsoletas: señalar refresh
	uc.notifier.Invalidate(port.ViewSales, port.ViewStock, port.ViewCustomers, port.ViewSummaries)

	metrics.SalesCommitted.Inc()
	log.Printf("✅ Venta confirmada: %s (recibo %s, %d items, %d efectos degradados)",
		sale.InvoiceNumber, sale.ReceiptNumber, sale.TotalItems(), len(softFailures))

	return &CheckoutResult{Sale: sale, SoftFailures: softFailures}, nil
}

// commitPlan es la tabla de pasos más el slot donde el paso 1 deja la venta
type commitPlan struct {
	table []commitStep
	sale  **entity.Sale
}

// buildSteps arma la tabla completa del commit para este carrito
// Los pasos son closures sobre `sale`, que el primer paso materializa;
// los pasos por línea se generan desde las líneas del carrito
func (uc *CheckoutUseCase) buildSteps(cart *cartEntity.Cart, cashierID string) commitPlan {
	var sale *entity.Sale

	table := []commitStep{
		{
			// Identificadores: factura local (monotónica por reloj) y
			// recibo canónico delegado al store
			name:   "generate_identifiers",
			policy: policyAbort,
			run: func(ctx context.Context) error {
				receiptNumber, err := uc.saleRepo.NextReceiptNumber(ctx)
				if err != nil {
					return fmt.Errorf("error obtaining receipt number: %w", err)
				}
				invoiceNumber := fmt.Sprintf("INV-%d", time.Now().UnixNano())
				sale, err = entity.NewSale(invoiceNumber, receiptNumber, cashierID, cart)
				return err
			},
		},
		{
			name:   "create_sale_header",
			policy: policyAbort,
			run: func(ctx context.Context) error {
				return uc.saleRepo.CreateSale(ctx, sale)
			},
		},
		{
			name:   "create_sale_items",
			policy: policyAbort,
			run: func(ctx context.Context) error {
				return uc.saleRepo.CreateSaleItems(ctx, sale.ID, sale.Items)
			},
		},
	}

	// Efectos por línea: descuento de stock y entrada en el libro de movimientos
	// Independientes entre líneas; cada uno soft-fail
	for _, line := range cart.Lines() {
		line := line
		table = append(table,
			commitStep{
				name:   fmt.Sprintf("stock_adjust:%s", line.Product.SKU),
				policy: policyContinue,
				run: func(ctx context.Context) error {
					return uc.stockSvc.AdjustStock(ctx, line.Product.ID, -line.Quantity)
				},
			},
			commitStep{
				name:   fmt.Sprintf("stock_movement:%s", line.Product.SKU),
				policy: policyContinue,
				run: func(ctx context.Context) error {
					return uc.stockSvc.RecordMovement(ctx, line.Product.ID, -line.Quantity, sale.InvoiceNumber)
				},
			},
		)
	}

	// Obligación diferida: solo pago deferred con cliente seleccionado
	if cart.PaymentMethod().IsDeferred() && cart.CustomerID() != nil {
		customerID := *cart.CustomerID()
		table = append(table, commitStep{
			name:   "deferred_obligation",
			policy: policyContinue,
			run: func(ctx context.Context) error {
				return uc.customerSvc.CreateDeferredObligation(ctx, customerID, sale.ID, sale.TotalAmount)
			},
		})
	}

	// Fidelización: solo pagos cobrados (cash/card) con cliente seleccionado
	if !cart.PaymentMethod().IsDeferred() && cart.CustomerID() != nil {
		customerID := *cart.CustomerID()
		table = append(table, commitStep{
			name:   "loyalty_accrual",
			policy: policyContinue,
			run: func(ctx context.Context) error {
				return uc.customerSvc.AccrueLoyalty(ctx, customerID, sale.TotalAmount)
			},
		})
	}

	return commitPlan{table: table, sale: &sale}
}

// runSteps ejecuta la tabla en orden aplicando la política de cada paso
func (uc *CheckoutUseCase) runSteps(ctx context.Context, steps []commitStep) ([]StepFailure, error) {
	var soft []StepFailure

	for _, step := range steps {
		err := step.run(ctx)
		if err == nil {
			continue
		}

		if step.policy == policyAbort {
			log.Printf("❌ Commit abortado en paso '%s': %v", step.name, err)
			metrics.CommitHardFailures.WithLabelValues(step.name).Inc()
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}

		// Soft-fail: registrar para diagnóstico y seguir, sin rollback
		log.Printf("⚠️  Paso '%s' falló (continuando): %v", step.name, err)
		metrics.CommitSoftFailures.WithLabelValues(step.name).Inc()
		soft = append(soft, StepFailure{Step: step.name, Err: err})
	}

	return soft, nil
}
