package main

import (
	"context"
	"os"

	"github.com/locvowork/orderdash/internal/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.ErrorLog(context.Background(), "command failed", err)
		os.Exit(1)
	}
}
