package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "housetasks/internal/adapter/http"
	"housetasks/internal/adapter/http/handlers"
	httpmiddleware "housetasks/internal/adapter/http/middleware"
	"housetasks/pkg/translator"
)

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, autoMigrate bool) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	a, err := bootstrap(ctx, logger, autoMigrate)
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(a.cfg.TrustedProxies); err != nil {
		_ = a.Close()
		return fmt.Errorf("trusted proxies: %w", err)
	}
	httpadapter.RegisterRoutes(r, httpadapter.NewHandlers(handlers.NewHealthHandler(a.db), a.service), a.cfg.JWTSecret)

	srv := &http.Server{
		Addr:              ":" + a.cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("driver", a.cfg.DbDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		a.cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("graceful shutdown initiated")
				shutdownErr := srv.Shutdown(ctx)
				return errors.Join(shutdownErr, a.Close())
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", zap.Int("exit_code", exitCode))
	if exitCode != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", exitCode)
	}
	return nil
}
