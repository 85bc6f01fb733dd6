package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "ferryops/internal/config"
	"ferryops/internal/gateway"
	router "ferryops/internal/http"
	"ferryops/internal/http/handlers"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	var gw gateway.Client
	if env.GatewayBaseURL != "" {
		gw = gateway.NewHTTPClient(env.GatewayBaseURL, env.GatewayServerKey)
	}
	handlers.SetGatewayClient(gw)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sweep := services.SweepService{
		Status: services.StatusService{
			BookingRepo:      repositories.BookingRepo{},
			TicketRepo:       repositories.TicketRepo{},
			PaymentRepo:      repositories.PaymentRepo{},
			BookingLogRepo:   repositories.BookingLogRepo{},
			ScheduleRepo:     repositories.ScheduleRepo{},
			FerryRepo:        repositories.FerryRepo{},
			ScheduleDateRepo: repositories.ScheduleDateRepo{},
		},
		Gateway:          gw,
		BookingRepo:      repositories.BookingRepo{},
		TicketRepo:       repositories.TicketRepo{},
		PaymentRepo:      repositories.PaymentRepo{},
		ScheduleRepo:     repositories.ScheduleRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(env.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				sweep.Run(sweepCtx)
			}
		}
	}()

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
