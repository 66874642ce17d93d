package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cartCache "pos/src/cart/infrastructure/cache"
	cartController "pos/src/cart/infrastructure/controller"
	cartSession "pos/src/cart/infrastructure/session"
	checkoutUseCase "pos/src/checkout/application/usecase"
	checkoutClient "pos/src/checkout/infrastructure/client"
	checkoutController "pos/src/checkout/infrastructure/controller"
	checkoutNotify "pos/src/checkout/infrastructure/notify"
	checkoutPersistence "pos/src/checkout/infrastructure/persistence"
	sharedConfig "pos/src/shared/infrastructure/config"
)

func main() {
	log.Println("🚀 POS Service - Iniciando...")

	sharedConfig.Load()

	// Configurar el router con Gin
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if os.Getenv("PROMETHEUS_ENABLED") == "true" {
		log.Println("Registering /metrics endpoint")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled")
	}

	// Conectar a la base de datos (opcional para bootstrap)
	db, err := sharedConfig.OpenDB()
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		log.Println("⚠️  Continuando sin DB (solo carrito y health check)")
		db = nil
	} else {
		defer db.Close()
		log.Println("✅ Conexión a pos_db establecida con éxito")

		if err := sharedConfig.RunMigrations(db); err != nil {
			log.Printf("⚠️  Advertencia: Error al aplicar migraciones: %v", err)
		} else {
			log.Println("✅ Migraciones aplicadas")
		}
	}

	// Health check
	healthHandler := func(ctx *gin.Context) {
		status := gin.H{"status": "ok", "db": db != nil}
		ctx.JSON(200, status)
	}
	router.GET("/health", healthHandler)

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthHandler)

	setupPOSModule(v1, db)

	// Iniciar el servidor
	port := sharedConfig.GetEnv("PORT", "8080")
	log.Printf("✅ Servidor POS iniciado en http://localhost:%s", port)
	router.Run(":" + port)
}

// setupPOSModule configura los módulos de carrito y checkout
func setupPOSModule(router *gin.RouterGroup, db *sql.DB) {
	log.Println("Configurando módulo POS...")

	// Cache de productos para resolver precios al agregar líneas
	productCache := cartCache.NewProductCache()
	if db != nil {
		if err := productCache.LoadFromDB(db); err != nil {
			log.Printf("⚠️  Warning: Could not load product cache: %v", err)
		}
	} else {
		log.Println("⚠️  Product cache vacío (sin conexión a DB)")
	}

	// Sesiones de caja: un carrito por sesión
	sessions := cartSession.NewStore(sharedConfig.DefaultTaxRate())

	// Clientes HTTP hacia los colaboradores externos
	stockClient := checkoutClient.NewStockClient()
	customerClient := checkoutClient.NewCustomerClient()

	// Notificador de vistas obsoletas
	notifier := checkoutNotify.NewLogViewNotifier()

	// Casos de uso de checkout (requieren DB)
	var checkoutUC *checkoutUseCase.CheckoutUseCase
	var listSalesUC *checkoutUseCase.ListSalesUseCase
	var getSaleUC *checkoutUseCase.GetSaleUseCase
	var dailyReportUC *checkoutUseCase.DailyReportUseCase
	if db != nil {
		saleRepo := checkoutPersistence.NewSalePostgresRepository(db)
		checkoutUC = checkoutUseCase.NewCheckoutUseCase(saleRepo, stockClient, customerClient, notifier)
		listSalesUC = checkoutUseCase.NewListSalesUseCase(saleRepo)
		getSaleUC = checkoutUseCase.NewGetSaleUseCase(saleRepo)
		dailyReportUC = checkoutUseCase.NewDailyReportUseCase(db)
	}

	// Crear controladores y registrar rutas
	cartCtrl := cartController.NewCartController(sessions, productCache)
	checkoutCtrl := checkoutController.NewCheckoutController(checkoutUC, listSalesUC, getSaleUC, sessions)
	reportCtrl := checkoutController.NewReportController(dailyReportUC)

	cartCtrl.RegisterRoutes(router)
	checkoutCtrl.RegisterRoutes(router)
	reportCtrl.RegisterRoutes(router)
}
