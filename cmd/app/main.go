package main

import (
	"github.com/Raimguzhinov/alarm-go/internal/app"
	"github.com/Raimguzhinov/alarm-go/internal/config"
)

func main() {
	cfg := config.GetConfig()

	app.Run(cfg)
}
