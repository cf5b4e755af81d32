package main

import (
	"log"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/routes"
	"github.com/MominAnxs/diabetes-tracker/services"
	"github.com/MominAnxs/diabetes-tracker/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	rt := services.NewRealtimeHub()
	ps, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
		ps = nil
	}
	services.InitAlertDeps(config.DB, rt, ps)

	r := routes.SetupRouter(rt, ps)
	r.Run(":8080")
}
