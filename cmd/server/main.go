package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"walletpoker-server/internal/config"
	"walletpoker-server/internal/jwt"
	"walletpoker-server/internal/mux"
	"walletpoker-server/pkg/db"
	"walletpoker-server/pkg/room"
	"walletpoker-server/pkg/store"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 15

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadSecret()

	opts, err := room.OptionsFromConfig(config.Instance().Tournament)
	if err != nil {
		logrus.WithError(err).Fatal("could not load tournament options")
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), newStore(), opts)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("could not listen")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("could not shut down the server")
	}

	pitBoss.Shutdown()
}

// newStore prefers Postgres, then a SQLite file, and keeps results in memory when neither is
// configured
func newStore() store.Store {
	cfg := config.Instance()
	switch {
	case cfg.PGDSN != "":
		// run the db migrations
		db.Migrate()
		return store.NewPostgres(db.Instance())
	case cfg.SQLitePath != "":
		s, err := store.NewSQLite(context.Background(), cfg.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("could not open sqlite database")
		}

		logrus.WithField("path", cfg.SQLitePath).Info("storing tournament results in sqlite")
		return s
	}

	logrus.Warn("no database is configured, tournament results are kept in memory")
	return store.NewMemory()
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
