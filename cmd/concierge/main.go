package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/robelasefa/mafirestaurant/internal/api"
	"github.com/robelasefa/mafirestaurant/internal/common"
	"github.com/robelasefa/mafirestaurant/internal/kb"
	"github.com/robelasefa/mafirestaurant/internal/llm"
	"github.com/robelasefa/mafirestaurant/internal/retriever"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("concierge: .env file not loaded", "error", err)
	} else {
		logger.Info("concierge: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	knowledgePath := flag.String("knowledge", defaultKnowledgePath(), "path to the knowledge record JSON")
	cacheTTL := flag.String("cache-ttl", "", "reply cache TTL override (e.g. 5m)")
	flag.Parse()

	logger.Info("concierge: startup initiated", "addr", *addr, "knowledge", *knowledgePath)

	record, err := kb.Load(*knowledgePath)
	if err != nil {
		logger.Error("concierge: knowledge record load failed", "error", err)
		fmt.Println("knowledge record error:", err)
		os.Exit(1)
	}

	docs := kb.BuildCorpus(record)
	index := retriever.New(docs)
	logger.Info("concierge: corpus indexed", "docs", index.Size())

	provider := llm.NewProvider()
	logger.Info("concierge: llm provider ready", "provider", provider.Name())

	cfg := api.DefaultConfig()
	if trimmed := strings.TrimSpace(*cacheTTL); trimmed != "" {
		dur, err := time.ParseDuration(trimmed)
		if err != nil {
			logger.Error("concierge: invalid cache TTL", "value", trimmed, "error", err)
			fmt.Println("cache ttl error:", err)
			os.Exit(1)
		}
		cfg.CacheTTL = dur
	}

	server, err := api.NewServer(index, record.Brand.Name, provider, &cfg)
	if err != nil {
		logger.Error("concierge: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("concierge: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("concierge: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultKnowledgePath() string {
	if env := strings.TrimSpace(os.Getenv("KNOWLEDGE_PATH")); env != "" {
		return env
	}
	return filepath.Join("config", "knowledge.json")
}
