package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-tile-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Tile Path Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=400&height=225", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
