package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/aakifnehal/MedMind/internal/adapters/driving/cli"
)

func main() {
	// Provider API keys may live in a local .env file.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
