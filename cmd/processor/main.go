package main

import (
	"github.com/ds124wfegd/WB_L3/promo/config"
	"github.com/ds124wfegd/WB_L3/promo/internal/appServer"
	"github.com/sirupsen/logrus"
)

func main() {
	v, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("parse config: %v", err)
	}

	appServer.RunProcessor(cfg)
}
