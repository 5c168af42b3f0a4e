// Command matchsim loads a YAML scenario describing two starting hands and
// decks, plays an AI-vs-AI match to completion, and prints the result; with
// -v it also prints each play and pass as a plain transcript — grounded on cmd/bga_test's "parse a file, run a simulation, print
// progress" shape, not on any presentation layer from the original source.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lukev/gwent_server/internal/ai"
	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/match"
	"github.com/lukev/gwent_server/internal/scenario"
)

func main() {
	scenarioFlag := flag.String("scenario", "", "path to a scenario YAML file")
	catalogFlag := flag.String("catalog", "", "path to a JSON card catalog (id -> card fields)")
	verboseFlag := flag.Bool("v", false, "print each play as it happens")
	flag.Parse()

	if *scenarioFlag == "" || *catalogFlag == "" {
		fmt.Println("Usage: matchsim -scenario scenario.yaml -catalog catalog.json [-v]")
		os.Exit(1)
	}

	cfg, err := scenario.Load(*scenarioFlag)
	if err != nil {
		fmt.Printf("failed to load scenario: %v\n", err)
		os.Exit(1)
	}

	catalog, err := loadCatalog(*catalogFlag)
	if err != nil {
		fmt.Printf("failed to load catalog: %v\n", err)
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
	fmt.Printf("starting match: %s vs %s\n", players[0].ID, players[1].ID)
	weights := cfg.AIWeights.Resolve()

	turn := 0
	const maxTurns = 500
	for !m.Over && turn < maxTurns {
		turn++
		active := m.CurrentRound.ActivePlayer()
		action := ai.ChooseAction(m, active.ID, weights)

		if action.Pass {
			if *verboseFlag {
				fmt.Printf("round %d: %s passes\n", m.RoundNumber, active.ID)
			}
			if err := m.PassTurn(active.ID); err != nil {
				fmt.Printf("pass failed for %s: %v\n", active.ID, err)
				os.Exit(1)
			}
			continue
		}

		if *verboseFlag {
			fmt.Printf("round %d: %s plays %s\n", m.RoundNumber, active.ID, action.Card.Name)
		}
		if err := m.PlayCard(active.ID, action.Card.ID, action.TargetRow, action.TargetUnit); err != nil {
			fmt.Printf("play failed for %s: %v\n", active.ID, err)
			os.Exit(1)
		}
	}

	if turn >= maxTurns {
		fmt.Println("match aborted: turn limit reached without a decision")
		os.Exit(1)
	}

	winner := m.MatchWinner()
	if winner == nil {
		fmt.Println("match ended without a winner (draw on wins)")
		return
	}
	fmt.Printf("match complete after %d turns: %s wins (%d-%d rounds, lives %v)\n",
		turn, winner.ID, m.Wins[players[0].ID], m.Wins[players[1].ID], m.Lives)
}

func loadCatalog(path string) (map[string]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog map[string]card.Card
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
