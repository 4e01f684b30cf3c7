package main

import (
	"os"

	"github.com/favourami/eventplanner/internal/cli"
)

// @title        Event Planner App Shell
// @version      1.0
// @description  Local API over the event planner core: session, events, guests, invitations, gift shop and live lists.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" from POST /account/login.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
