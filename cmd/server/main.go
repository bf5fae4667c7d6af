package main

import (
	"github.com/joho/godotenv"

	"jscorphr/internal/app/server"
)

func main() {
	// Missing .env is fine; the environment still wins.
	_ = godotenv.Load()

	server.Run()
}
