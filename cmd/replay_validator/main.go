// Command replay_validator replays a transcript file end-to-end against a
// freshly built match and reports any error the engine rejects it with,
// grounded on the teacher's cmd/replay_validator "load a log, replay it,
// report errors" shape.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/match"
	"github.com/lukev/gwent_server/internal/notation"
	"github.com/lukev/gwent_server/internal/replay"
	"github.com/lukev/gwent_server/internal/scenario"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: replay_validator <transcript.txt> <scenario.yaml> <catalog.json>")
		os.Exit(1)
	}

	transcriptPath, scenarioPath, catalogPath := os.Args[1], os.Args[2], os.Args[3]

	transcriptBytes, err := os.ReadFile(transcriptPath)
	if err != nil {
		fmt.Printf("failed to read transcript: %v\n", err)
		os.Exit(1)
	}

	items, err := notation.Parse(string(transcriptBytes))
	if err != nil {
		fmt.Printf("failed to parse transcript: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("parsed %d transcript items\n", len(items))

	cfg, err := scenario.Load(scenarioPath)
	if err != nil {
		fmt.Printf("failed to load scenario: %v\n", err)
		os.Exit(1)
	}

	catalogBytes, err := os.ReadFile(catalogPath)
	if err != nil {
		fmt.Printf("failed to read catalog: %v\n", err)
		os.Exit(1)
	}
	var catalog map[string]card.Card
	if err := json.Unmarshal(catalogBytes, &catalog); err != nil {
		fmt.Printf("failed to parse catalog: %v\n", err)
		os.Exit(1)
	}

	players := [2]*match.Player{}
	for i, setup := range cfg.Players {
		hand, err := setup.ResolveHand(catalog)
		if err != nil {
			fmt.Printf("resolving hand for %s: %v\n", setup.ID, err)
			os.Exit(1)
		}
		deck, err := setup.ResolveDeck(catalog)
		if err != nil {
			fmt.Printf("resolving deck for %s: %v\n", setup.ID, err)
			os.Exit(1)
		}
		var leader *card.Card
		if setup.Leader != "" {
			if l, ok := catalog[setup.Leader]; ok {
				leader = &l
			}
		}
		p := match.NewPlayer(setup.ID, deck, leader)
		p.Hand = hand
		players[i] = p
	}

	m := match.New(players)
	sim := replay.NewMatchSimulator(m, items)

	fmt.Println("replaying transcript...")
	if err := sim.Run(); err != nil {
		fmt.Printf("replay failed at item %s: %v\n", notation.FormatIndex(sim.CurrentIndex), err)
		os.Exit(1)
	}

	fmt.Printf("replayed %d items successfully\n", sim.CurrentIndex)
	if winner := m.MatchWinner(); winner != nil {
		fmt.Printf("result: %s wins (%d-%d rounds)\n", winner.ID, m.Wins[players[0].ID], m.Wins[players[1].ID])
	} else {
		fmt.Println("result: match not yet decided")
	}
}
