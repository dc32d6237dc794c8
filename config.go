package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	Port        string
	RendererURI string
	CORSOrigins []string
}

func mustConfig() Config {
	// Missing .env files are fine; config may come straight from the environment.
	_ = godotenv.Load()

	cfg := Config{
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "kisansathi"),
		JWTSecret:   getenv("JWT_SECRET", "change_me"),
		Port:        getenv("PORT", "8080"),
		RendererURI: getenv("RENDERER_URL", "http://127.0.0.1:3000"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS",
			"http://localhost:3000,http://localhost:5173,http://127.0.0.1:5173")),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
