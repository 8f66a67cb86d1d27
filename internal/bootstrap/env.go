package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// Loadenv pulls a local .env into the process environment. Deployed
// instances configure MastoRide through real environment variables, so a
// missing file is not an error.
func Loadenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on process environment")
	}
}
