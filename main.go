package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/manovastra/storefront/app/cmd"
	"github.com/manovastra/storefront/app/configs"
	"github.com/manovastra/storefront/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	rand.Seed(time.Now().UnixNano())

	if env.RazorpayKeyID == "" || env.RazorpayKeySecret == "" {
		log.Fatal("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET are not set. Please check your .env file.")
	}
	configs.InitRazorpayClient()

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router, err := routes.NewRouter(db, env)
	if err != nil {
		log.Fatal("Router init failed:", err)
	}

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}
}
