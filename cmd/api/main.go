package main

import (
	"pix_checkout/internal/adapter/http/routes"
	"pix_checkout/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Pix Checkout API
// @version         1.0
// @description     Pix charge creation and payment status polling.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run(config.NewConfig())
}
