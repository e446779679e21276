// Command syphonwatch lists the Syphon servers currently on the system and
// watches the directory for servers coming and going.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/syphon"
)

func main() {
	var (
		interval = flag.Duration("interval", time.Second, "poll interval")
		once     = flag.Bool("once", false, "list servers once and exit")
	)
	flag.Parse()

	if !syphon.Available() {
		log.Fatal("Syphon is not available on this platform")
	}

	if *once {
		for id, label := range snapshot() {
			fmt.Printf("%s  %s\n", id, label)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seen := snapshot()
	log.Printf("%d server(s) online, polling every %v", len(seen), *interval)
	for id, label := range seen {
		log.Printf("  %s  %s", id, label)
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := snapshot()
			for id, label := range now {
				if _, ok := seen[id]; !ok {
					log.Printf("+ %s  %s", id, label)
				}
			}
			for id, label := range seen {
				if _, ok := now[id]; !ok {
					log.Printf("- %s  %s", id, label)
				}
			}
			seen = now
		}
	}
}

// snapshot copies the directory contents once, keyed by server UUID. The
// descriptions are borrowed, so every field is copied out on the spot.
func snapshot() map[string]string {
	out := map[string]string{}
	for _, desc := range syphon.SharedDirectory().Servers() {
		if id, ok := desc.UUID(); ok {
			name, _ := desc.Name()
			app, _ := desc.AppName()
			out[id] = fmt.Sprintf("%q from %s", name, app)
		}
	}
	return out
}
