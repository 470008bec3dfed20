//go:build ebiten

package main

import (
	"errors"
	"log"
	"os"

	"chunk-ca/internal/app"
	"chunk-ca/internal/config"
	"chunk-ca/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.FromArgs("ca", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	game := app.New(session)

	ebiten.SetWindowTitle("chunk-ca")
	ebiten.SetWindowSize(game.Size())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
