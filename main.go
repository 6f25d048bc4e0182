package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nivar/journey/internal/config"
	"github.com/nivar/journey/internal/web"
)

func main() {
	log.SetPrefix("[JOURNEY] ")

	cfg, err := config.Load(flag.CommandLine, os.Args[1:], os.Environ())
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.Run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
