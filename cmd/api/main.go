package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/CharlesOsang017/keja-hook/internal/activation"
	"github.com/CharlesOsang017/keja-hook/internal/config"
	"github.com/CharlesOsang017/keja-hook/internal/database"
	kejaHttp "github.com/CharlesOsang017/keja-hook/internal/http"
	leaseHandler "github.com/CharlesOsang017/keja-hook/internal/http/lease"
	membershipHandler "github.com/CharlesOsang017/keja-hook/internal/http/membership"
	partnershipHandler "github.com/CharlesOsang017/keja-hook/internal/http/partnership"
	paymentHandler "github.com/CharlesOsang017/keja-hook/internal/http/payment"
	propertyHandler "github.com/CharlesOsang017/keja-hook/internal/http/property"
	userHandler "github.com/CharlesOsang017/keja-hook/internal/http/user"
	"github.com/CharlesOsang017/keja-hook/internal/investment"
	investmentStore "github.com/CharlesOsang017/keja-hook/internal/investment/store"
	"github.com/CharlesOsang017/keja-hook/internal/lease"
	leaseStore "github.com/CharlesOsang017/keja-hook/internal/lease/store"
	"github.com/CharlesOsang017/keja-hook/internal/membership"
	membershipStore "github.com/CharlesOsang017/keja-hook/internal/membership/store"
	"github.com/CharlesOsang017/keja-hook/internal/mpesa"
	"github.com/CharlesOsang017/keja-hook/internal/notify"
	"github.com/CharlesOsang017/keja-hook/internal/partnership"
	partnershipStore "github.com/CharlesOsang017/keja-hook/internal/partnership/store"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
	paymentStore "github.com/CharlesOsang017/keja-hook/internal/payment/store"
	"github.com/CharlesOsang017/keja-hook/internal/property"
	propertyStore "github.com/CharlesOsang017/keja-hook/internal/property/store"
	"github.com/CharlesOsang017/keja-hook/internal/user"
	userStore "github.com/CharlesOsang017/keja-hook/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gateway := mpesa.New(mpesa.Config{
		BaseURL:        cfg.Mpesa.BaseURL,
		ShortCode:      cfg.Mpesa.ShortCode,
		PassKey:        cfg.Mpesa.PassKey,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		CallbackURL:    cfg.Mpesa.CallbackURL,
		Timeout:        cfg.Mpesa.Timeout,
	})

	users := userStore.New(db)

	var (
		membershipService  = membership.NewService(membershipStore.New(db), users)
		investmentService  = investment.NewService(investmentStore.New(db))
		propertyService    = property.NewService(propertyStore.New(db))
		leaseService       = lease.NewService(leaseStore.New(db))
		partnershipService = partnership.NewService(partnershipStore.New(db))
		userService        = user.NewService(users)
	)

	ledger := paymentStore.New(db)

	paymentService := payment.NewService(
		ledger,
		gateway,
		propertyService,
		membershipService,
		investmentService,
		leaseService,
		partnershipService,
		cfg.Payments.PartnershipFee,
	)

	dispatchers := activation.Registry(
		membershipService,
		investmentService,
		propertyService,
		leaseService,
		partnershipService,
	)

	reconciler := payment.NewReconciler(ledger, gateway, dispatchers, notify.New(cfg.Notify.WebhookURL))

	repair := payment.NewRepairJob(ledger, reconciler, cfg.Payments.RepairInterval, cfg.Payments.PollAge)
	go repair.Run(context.Background())

	var (
		paymentH     = paymentHandler.NewHandler(paymentService, reconciler)
		membershipH  = membershipHandler.NewHandler(membershipService)
		propertyH    = propertyHandler.NewHandler(propertyService)
		leaseH       = leaseHandler.NewHandler(leaseService)
		partnershipH = partnershipHandler.NewHandler(partnershipService)
		userH        = userHandler.NewHandler(userService)
	)

	router := kejaHttp.New(cfg.Auth.JWTSecret, paymentH, membershipH, propertyH, leaseH, partnershipH, userH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
