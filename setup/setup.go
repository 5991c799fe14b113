package setup

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/routes"
	sig "github.com/DamienMonchaty/VIbe/signal"
	"github.com/gorilla/mux"
)

func MustInitDb() {
	err := db.Connect()
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp()
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}
}

func StartServer(r *mux.Router) {
	if os.Getenv("GOENV") == "development" {
		log.Println("In development mode.")
	}

	externalPort := os.Getenv("PORT")
	if externalPort == "" {
		externalPort = "8088"
	}

	routes.AddRoutes(r)
	go startServer(externalPort, r)
	log.Println("Started server on port " + externalPort)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM)

	go func() {
		<-sigTermChan

		// give live signaling connections a moment to wind down
		deadline := time.Now().Add(10 * time.Second)
		for {
			n := sig.DefaultHub.NumConns()
			if n == 0 || time.Now().After(deadline) {
				break
			}
			log.Printf("Waiting for %d signaling connections to close...\n", n)
			time.Sleep(1 * time.Second)
		}

		os.Exit(0)
	}()

	select {}
}

func startServer(port string, routes *mux.Router) {
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), routes)
	if err != nil {
		log.Fatalf("Failed to start server on port %s: %v", port, err)
	}
}
