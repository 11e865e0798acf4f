package main

import (
	"log"

	"chat-server/confs"
	"chat-server/db"
	"chat-server/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// connect to database Postgres
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(database, cfg)
	log.Printf("Server is running on port %s", cfg.Port)
	srv.Start()
}
