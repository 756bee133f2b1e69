// @title           Nautikos API
// @version         1.0
// @description     Candidate onboarding and review API for the Nautikos shipping recruitment platform.
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "nautikos_backend/internal/app"

func main() {
	app.Run()
}
