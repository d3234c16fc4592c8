package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"aniversario/internal/app"
	"aniversario/internal/client"
	"aniversario/internal/config"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadWebConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	api := client.New(cfg.APIURL, cfg.APITimeout)
	web := app.NewWeb(cfg, api)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           web.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("web listening addr=%s api=%s", srv.Addr, api.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		web.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("web stopped")
}
