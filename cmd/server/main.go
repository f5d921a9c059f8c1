package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/news-agent/internal/api"
	"github.com/example/news-agent/internal/errs"
	"github.com/example/news-agent/internal/news"
	"github.com/example/news-agent/internal/orchestrator"
	"github.com/example/news-agent/internal/providers/llm"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	client, err := llm.NewFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	newsClient := news.NewClient()
	if newsClient.APIKey == "" {
		log.Fatal(&errs.ConfigurationError{Name: "EXA_API_KEY"})
	}

	orch := orchestrator.New(client, newsClient)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, orch)

	log.Printf("news agent listening on %s", addr)
	if err := http.ListenAndServe(addr, cors(mux)); err != nil {
		log.Fatal(err)
	}
}

// cors allows any origin so a local frontend can talk to the API directly.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
