// Command bffctl is a headless driver for the BFF engine: it runs step(n)
// in a loop and periodically logs the current statistics snapshot, for use
// without the GUI build tag (see cmd/bffview for the visual driver).
package main

import (
	"flag"
	"log"
	"time"

	"github.com/arabold/bff-computational-life/internal/app"
	"github.com/arabold/bff-computational-life/internal/engine"
)

func main() {
	cliCfg := app.NewCLIConfig()
	cliCfg.Bind(flag.CommandLine)
	epochs := flag.Uint64("epochs", 0, "stop after this many epochs have completed (0 = run forever)")
	reportEvery := flag.Duration("report-every", 2*time.Second, "wall-clock interval between stats log lines")
	flag.Parse()
	cliCfg.Finalize(flag.CommandLine)

	econf, err := cliCfg.EngineConfig()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := engine.NewEngine(econf)
	if err != nil {
		log.Fatalf("constructing engine: %v", err)
	}

	log.Printf("bffctl: preset=%s grid=%dx%d tape=%d topology=%s seed=%d",
		econf.Name, econf.GridWidth, econf.GridHeight, econf.TapeSize, econf.Topology, econf.Seed)

	cellsPerEpoch := uint32(econf.GridWidth * econf.GridHeight)
	ticker := time.NewTicker(*reportEvery)
	defer ticker.Stop()

	for {
		eng.Step(cellsPerEpoch)
		s := eng.Stats()

		select {
		case <-ticker.C:
			log.Printf("epoch=%d entropy=%.3f zero_density=%.3f repl_rate=%.3f eff_repl=%.3f history_len=%d",
				s.Epoch, s.Entropy, s.ZeroDensity, s.ReplicationRate, s.EffectiveReplication, len(eng.History()))
		default:
		}

		if *epochs != 0 && s.Epoch >= *epochs {
			log.Printf("reached target epoch %d, stopping", *epochs)
			return
		}
	}
}
