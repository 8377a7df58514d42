package main

import (
	"github.com/allo/restaurant/internal/app/orderapp"
	"github.com/allo/restaurant/internal/config"
)

func main() {
	config.MustInit("order-svc")
	orderapp.MustNewApp().Run()
}
