package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	ossim "github.com/Imanue001/Os-simulator"
	"github.com/Imanue001/Os-simulator/logging"
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/service/event"
	"github.com/Imanue001/Os-simulator/service/scheduler"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	traceFile := flag.String("trace", "", "write OpenTelemetry spans to this file")
	flag.Parse()

	cfg := ossim.DefaultConfig()
	if *configPath != "" {
		loaded, err := ossim.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := logging.GetLogger()
	options := []ossim.Option{
		ossim.WithConfig(cfg),
		ossim.WithEventListener(func(e *event.Event[model.Process]) {
			log.WithField("pid", e.Context.PID).Debug(e.Context.EventType)
		}),
	}
	if *traceFile != "" {
		options = append(options, ossim.WithTracing("ossim", "0.1.0", *traceFile))
	}

	srv, err := ossim.New(options...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	rt := srv.Runtime()
	if err := rt.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start simulation: %v\n", err)
		os.Exit(1)
	}

	menu(rt)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rt.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown did not converge: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Simulation terminated safely.")
}

func menu(rt *ossim.Runtime) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		status := "PAUSED"
		if rt.Running() {
			status = "RUNNING"
		}
		fmt.Printf("\n========= OS SIMULATOR =========\n")
		fmt.Printf("Status: %s\n", status)
		fmt.Println("1) Run Simulation")
		fmt.Println("2) Pause Simulation")
		fmt.Println("3) View System State")
		fmt.Println("4) View Gantt Chart")
		fmt.Println("5) Exit")
		fmt.Print("Choice: ")

		if !scanner.Scan() {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			rt.SetRunning(true)
		case "2":
			rt.SetRunning(false)
		case "3":
			fmt.Printf("\n--- Resources Available: %v\n", rt.SnapshotResources())
			fmt.Printf("--- Processes in Ready Queue: %d\n", rt.ReadyCount())
			fmt.Printf("--- Produced: %d  Completed: %d\n", rt.Produced(), rt.Completed())
		case "4":
			printGantt(rt.Timeline())
		case "5":
			// Let blocked loops observe the stop latch before joining.
			rt.SetRunning(true)
			rt.RequestStop()
			return
		}
	}
}

func printGantt(timeline []scheduler.Slice) {
	if len(timeline) == 0 {
		fmt.Println("\nGantt chart is empty.")
		return
	}
	var bar strings.Builder
	bar.WriteString("|")
	for _, slice := range timeline {
		bar.WriteString(fmt.Sprintf(" P%d |", slice.PID))
	}
	fmt.Printf("\n=== GANTT CHART ===\n%s\n0", bar.String())
	elapsed := 0
	for _, slice := range timeline {
		elapsed += slice.Length
		fmt.Printf("%5d", elapsed)
	}
	fmt.Println()
}
