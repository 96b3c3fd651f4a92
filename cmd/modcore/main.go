package main

import (
	"os"

	"github.com/small-frappuccino/modcore/pkg/app"
	"github.com/small-frappuccino/modcore/pkg/log"
)

// main is the entry point of the Discord bot.
func main() {
	if err := app.Run("modcore", "MODCORE_BOT_TOKEN"); err != nil {
		log.ErrorLoggerRaw().Error("Fatal: " + err.Error())
		os.Exit(1)
	}
}
