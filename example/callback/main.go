package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Nick-P-Adams/hrvm/pkg/hrvm"
)

func main() {
	flow, err := hrvm.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callback := func(u hrvm.Update) error {
		if u.HRV == nil {
			fmt.Printf("%s status=%s hrv=<none>\n", time.Now().Format(time.RFC3339), u.Status)
			return nil
		}
		fmt.Printf("%s status=%s hrv=%.2fms window_end=%s\n",
			time.Now().Format(time.RFC3339),
			u.Status,
			u.HRV.Value,
			u.HRV.Timestamp.Format(time.RFC3339Nano),
		)
		return nil
	}

	if err := flow.Run(ctx, hrvm.StreamOutCallback("stdout", callback)); err != nil && err != context.Canceled {
		log.Fatalf("monitor error: %v", err)
	}
}
