package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"textrefine/internal/httpapi"
	"textrefine/internal/telemetry"
	"textrefine/pkg/coherence"
	"textrefine/pkg/correctness"
	"textrefine/pkg/grammar"
	"textrefine/pkg/pipeline"
	"textrefine/pkg/readability"
	"textrefine/pkg/vocabulary"
)

func main() {
	var port int
	var grammarURL string
	flag.IntVar(&port, "port", 8080, "Port to listen on")
	flag.StringVar(&grammarURL, "grammar-url", "http://localhost:8081/v2/check", "Grammar/style engine check endpoint")
	flag.Parse()

	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, "textrefine")
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	origins := strings.Split(getenv("ORIGINS", "http://localhost:4200"), ",")
	evaluationLimit := getenvInt("EVALUATION_LIMIT", 5)
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	geminiModel := getenv("GEMINI_MODEL", "gemini-2.0-flash-lite")

	grammarClient, err := grammar.New(grammarURL, "en-US", grammar.DefaultTimeout, log)
	if err != nil {
		log.Fatal("failed to initialize grammar engine client", zap.Error(err))
	}

	coherenceAnalyzer, err := coherence.New(ctx, geminiAPIKey, geminiModel, log)
	if err != nil {
		log.Fatal("failed to initialize coherence analyzer", zap.Error(err))
	}
	// Pass an untyped nil CoherenceAnalyzer when no credential is configured:
	// assigning the nil *coherence.Analyzer directly would box a non-nil
	// interface around a nil pointer, breaking the pipeline's skip check.
	var coh pipeline.CoherenceAnalyzer
	if coherenceAnalyzer != nil {
		coh = coherenceAnalyzer
	} else {
		log.Info("GEMINI_API_KEY not set; coherence analysis will be skipped for all requests")
	}

	p := pipeline.New(
		correctness.New(grammarClient),
		vocabulary.New(),
		readability.New(),
		coh,
		log,
	)

	server := httpapi.NewServer(p, evaluationLimit, telemetry.NewMetrics(), log)
	mux := http.NewServeMux()
	server.Routes(mux)

	handler := httpapi.CORS(origins, mux)

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
