package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"doc-assistant-backend/config"
	"doc-assistant-backend/controller"
	"doc-assistant-backend/router"
	"doc-assistant-backend/service/conversation"
	"doc-assistant-backend/service/document"
	"doc-assistant-backend/service/llm"
	"doc-assistant-backend/service/persistence"
	"doc-assistant-backend/service/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	if err := config.Load(); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	client, err := llm.NewClient(config.Cfg.Model)
	if err != nil {
		slog.Error("Failed to create model client", "err", err)
		os.Exit(1)
	}

	// 持久化存储尽力而为，连接失败降级为纯内存模式
	store := &persistence.Manager{}
	store.Connect(config.Cfg.Database.DSN)

	registry := session.NewRegistry()

	ingestor := &document.Ingestor{
		Registry:   registry,
		Summarizer: client,
		Store:      store,
		UploadDir:  config.Cfg.Upload.Dir,
	}

	graph := conversation.NewGraph(client)

	ctl := controller.New(registry, ingestor, graph, client, store)

	r := router.Register(ctl)

	addr := config.Cfg.Server.Addr()
	slog.Info("Starting server", "addr", addr, "model", config.Cfg.Model.Name)
	if err := r.Run(addr); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
