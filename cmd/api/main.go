package main

import (
	"context"
	"log/slog"
	"os"
	"socialhub/cmd/app"
)

func main() {
	if err := app.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("Приложение завершилось с ошибкой", "error", err)
		os.Exit(1)
	}
}
