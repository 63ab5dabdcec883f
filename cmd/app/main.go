package main

import (
	"encomendas/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("encomendas: %v", err)
	}
}
