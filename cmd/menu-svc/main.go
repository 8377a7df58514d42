package main

import (
	"github.com/allo/restaurant/internal/app/menuapp"
	"github.com/allo/restaurant/internal/config"
)

func main() {
	config.MustInit("menu-svc")
	menuapp.MustNewApp().Run()
}
