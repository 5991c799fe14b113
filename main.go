package main

import (
	"github.com/DamienMonchaty/VIbe/setup"
	"github.com/gorilla/mux"
)

func main() {
	setup.MustInitDb()

	r := mux.NewRouter()
	setup.StartServer(r)
}
