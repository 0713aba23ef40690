package main

import (
	"os"

	"codeberg.org/algrv/playground/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		_ = err // .env is optional
	}

	if err := newRootCmd().Execute(); err != nil {
		logger.ErrorErr(err, "cachectl failed")
		os.Exit(1)
	}
}
