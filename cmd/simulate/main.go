// Command simulate runs a headless colony simulation against a configuration
// file and prints a run summary. Every turn, each surviving controller spends
// a fixed number of energy points on bot actions, so the run exercises the
// card decks, the economy, and the elimination sweep exactly as configured.
// It is the quickest way to sanity check a new scenario's balance before
// serving it.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/crashsite/botcolony/game/engine"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "run a headless bot colony simulation from a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/classic.json",
				Usage:   "path to the game configuration file",
			},
			&cli.IntFlag{
				Name:  "days",
				Value: 30,
				Usage: "stop after this many in-game days",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 0,
				Usage: "random seed (0 seeds from the clock)",
			},
			&cli.IntFlag{
				Name:  "energy",
				Value: 3,
				Usage: "energy points each controller spends per turn",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print a progress line for every turn",
			},
		},
		Action: runSimulation,
	}
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	maxDays := int(cmd.Int("days"))
	seed := cmd.Int64("seed")
	energy := int(cmd.Int("energy"))
	verbose := cmd.Bool("verbose")

	if maxDays <= 0 {
		return fmt.Errorf("days must be positive, got %d", maxDays)
	}
	if energy <= 0 {
		return fmt.Errorf("energy must be positive, got %d", energy)
	}

	config, err := engine.LoadGameConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.NewEngineWithRand(config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	fmt.Printf("Simulating %q (%dx%d, %d controllers, seed %d)\n",
		config.Name, config.MapWidth, config.MapHeight, len(config.Controllers), seed)

	turns := 0
	failures := 0
	for eng.Status() == engine.StatusActive && eng.Day() < maxDays {
		controllers := eng.Controllers()
		if len(controllers) == 0 {
			break
		}

		orders := buildTurnOrders(controllers, energy)
		if len(orders) == 0 {
			break
		}

		prevDay, prevHour := eng.Day(), eng.Hour()
		report := eng.ProcessTurn(orders)
		turns++
		failures += len(report.Failures)

		// Every order can fail with the clock unmoved when the spend does not
		// fit the day's remaining hours; without this check the loop never ends
		if len(report.Failures) == len(orders) && report.Day == prevDay && report.Hour == prevHour {
			fmt.Printf("turn %d: stalled, every order failed with the clock at day %d hour %d\n",
				turns, report.Day, report.Hour)
			break
		}

		if verbose {
			fmt.Printf("turn %d: day %d hour %d, %d order(s), %d failure(s)\n",
				turns, report.Day, report.Hour, len(orders), len(report.Failures))
			for _, id := range report.Eliminated {
				fmt.Printf("turn %d: controller %d eliminated\n", turns, id)
			}
		}
	}

	printSummary(eng, turns, failures)
	return nil
}

// buildTurnOrders issues one bot-action order per controller, clamping the
// energy spend to what the controller can still fund
func buildTurnOrders(controllers []*engine.Controller, energy int) []engine.Order {
	var orders []engine.Order
	for _, controller := range controllers {
		points := energy
		if total := controller.TotalResources(); total < points {
			points = total
		}
		if points <= 0 {
			continue
		}
		spend := points
		orders = append(orders, engine.Order{
			ControllerID: controller.ID,
			Action:       engine.TakeBotActions,
			Parameters:   engine.OrderParameters{EnergyPoints: &spend},
		})
	}
	return orders
}

func printSummary(eng *engine.GameEngine, turns, failures int) {
	fmt.Printf("\n=== Simulation finished ===\n")
	fmt.Printf("Status: %s at day %d, hour %d (%d turns, %d failed orders)\n",
		eng.Status(), eng.Day(), eng.Hour(), turns, failures)

	if victors := eng.Victors(); len(victors) > 0 {
		fmt.Printf("Victors: %v\n", victors)
	}

	controllers := eng.Controllers()
	if len(controllers) == 0 {
		fmt.Println("All controllers were eliminated")
	}
	for _, controller := range controllers {
		fmt.Printf("Controller %d: MINERAL=%d BIOMASS=%d ENERGY=%d, %d bot(s)\n",
			controller.ID,
			controller.Resources[engine.ResourceMineral],
			controller.Resources[engine.ResourceBiomass],
			controller.Resources[engine.ResourceEnergy],
			len(controller.Bots))
	}

	events := eng.EventsTail(10)
	if len(events) > 0 {
		fmt.Println("\nLast events:")
		for _, event := range events {
			fmt.Printf("  [day %d hour %d] %s\n", event.Day, event.Hour, event.Message)
		}
	}
}
