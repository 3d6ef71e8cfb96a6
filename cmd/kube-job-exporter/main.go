package main

import (
	"context"
	"log"
	"os"

	"github.com/NVIDIA/kube-job-exporter/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
