// Profiling of entity churn: create, group, update, destroy, refresh.
//
//	go build ./cmd/profile
//	./profile -mode mem
//	go tool pprof -http=":8000" -nodefraction=0.001 ./profile mem.pprof
package main

import (
	"flag"
	"log"

	"gametemple/internal/component"
	"gametemple/internal/ecs"
	"gametemple/internal/factory"

	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "mem", "Profile kind: cpu or mem")
	rounds := flag.Int("rounds", 50, "Managers to build")
	iters := flag.Int("iters", 1000, "Ticks per manager")
	entities := flag.Int("entities", 1000, "Entities created per tick")
	flag.Parse()

	var kind func(*profile.Profile)
	switch *mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	p := profile.Start(kind, profile.ProfilePath("."), profile.NoShutdownHook)
	peak := run(*rounds, *iters, *entities)
	p.Stop()
	log.Printf("peak live entities: %d", peak)
}

// run creates numEntities falling entities per tick, each living two ticks,
// so every tick exercises creation, group indexing, update and refresh.
func run(rounds, iters, numEntities int) int {
	var peak int
	for range rounds {
		m := ecs.NewManager(nil)
		for range iters {
			m.Refresh()
			for i := range numEntities {
				e := factory.CreatePlain(m, float32(i), 0, factory.Layer1)
				ecs.AddComponent(e, &component.Physics{})
				ecs.AddComponent(e, component.NewKillEntity(2))
			}
			m.Update()
			peak = max(peak, m.Len())
		}
		m.RemoveAll()
	}
	return peak
}
