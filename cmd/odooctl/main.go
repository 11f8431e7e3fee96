package main

import (
	"github.com/joho/godotenv"

	"github.com/aiqso/odoo-bridge/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
