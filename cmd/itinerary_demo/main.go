package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"daytrip/internal/ai"
	"daytrip/internal/config"
	"daytrip/internal/service"
)

func main() {
	city := flag.String("city", "Paris", "city for the day trip")
	interests := flag.String("interests", "art, food", "comma-separated interests")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	planner := service.NewTripPlanner(provider)
	it, err := planner.PlanItinerary(ctx, *city, *interests)
	if err != nil {
		log.Fatalf("Error generating itinerary: %v", err)
	}

	fmt.Println("Final Itinerary:")
	fmt.Println(it.Text)
}
