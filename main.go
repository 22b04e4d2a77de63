package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/cantinazo/api/cmd/app"
)

// @title           Cantinazo API
// @description     School canteen ordering API.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
