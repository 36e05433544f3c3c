//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/arabold/bff-computational-life/internal/app"
	"github.com/arabold/bff-computational-life/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewCLIConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	cfg.Finalize(flag.CommandLine)

	econf, err := cfg.EngineConfig()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := engine.NewEngine(econf)
	if err != nil {
		log.Fatalf("constructing engine: %v", err)
	}

	game := app.New(eng, cfg.Scale, uint32(cfg.StepsPerFrame))

	ebiten.SetWindowTitle("bffview — " + econf.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(econf.GridWidth*econf.TapeSize*cfg.Scale, econf.GridHeight*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
