package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mlotta/formforge/app"
	"github.com/mlotta/formforge/config"
	"github.com/mlotta/formforge/database"
	"github.com/mlotta/formforge/httpx"
	"github.com/mlotta/formforge/log"
	"github.com/mlotta/formforge/routes"
	"github.com/mlotta/formforge/storage"
	"github.com/mlotta/formforge/store"
	"github.com/mlotta/formforge/submit"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	forms := store.New(db)
	files := storage.NewDisk(cfg.UploadsDir, cfg.UploadsURL)

	app := app.App{
		Store:        forms,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Files:        files,
		Submissions:  submit.NewPipeline(forms, files),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
