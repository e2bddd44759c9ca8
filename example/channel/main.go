package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Nick-P-Adams/hrvm"
)

func main() {
	flow, err := hrvm.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, updates, closeUpdates := hrvm.NewChannelSubscriber("fanout", 32)
	defer closeUpdates()

	go fanoutWorker("dashboard", updates)

	if err := flow.Run(ctx, hrvm.StreamOutSubscriber(sub)); err != nil && err != context.Canceled {
		log.Fatalf("monitor error: %v", err)
	}
}

func fanoutWorker(name string, updates <-chan hrvm.Update) {
	for u := range updates {
		if u.HRV == nil {
			fmt.Printf("[%s] %s status=%s\n", name, time.Now().Format(time.RFC3339), u.Status)
			continue
		}
		fmt.Printf("[%s] %s hrv=%.2fms\n", name, time.Now().Format(time.RFC3339), u.HRV.Value)
	}
}
