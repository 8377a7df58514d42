package main

import (
	"github.com/allo/restaurant/internal/app/notificationapp"
	"github.com/allo/restaurant/internal/config"
)

func main() {
	config.MustInit("notification-svc")
	notificationapp.MustNewApp().Run()
}
