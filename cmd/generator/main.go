// Command generator renders campaign images from an events tree in one pass.
//
//	generator [-config dir] [-events dir] [-output dir] [campaign ...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ds124wfegd/WB_L3/promo/config"
	"github.com/ds124wfegd/WB_L3/promo/internal/appServer"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/sirupsen/logrus"
)

func main() {
	configDir := flag.String("config", "./config", "directory holding config.yaml")
	events := flag.String("events", "", "events root (overrides app.events_root)")
	output := flag.String("output", "", "output root (overrides app.output_root)")
	background := flag.String("background", "", "background file name inside the events root")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logrus.SetFormatter(new(logrus.JSONFormatter))
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	v, err := config.LoadConfig(*configDir)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("parse config: %v", err)
	}
	if *events != "" {
		cfg.App.EventsRoot = *events
	}
	if *output != "" {
		cfg.App.OutputRoot = *output
	}
	if *background != "" {
		cfg.App.Background = *background
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pipeline := appServer.NewPipeline(cfg)

	var reports []*entity.CampaignReport
	if names := flag.Args(); len(names) > 0 {
		for _, name := range names {
			report, err := pipeline.RunCampaign(ctx, name)
			if err != nil {
				logrus.WithField("campaign", name).Errorf("Campaign failed: %v", err)
				continue
			}
			reports = append(reports, report)
		}
	} else {
		reports, err = pipeline.RunAll(ctx)
		if err != nil {
			logrus.Fatalf("render campaigns: %v", err)
		}
	}

	failed := 0
	for _, r := range reports {
		failed += len(r.Failures)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		logrus.Errorf("write summary: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
