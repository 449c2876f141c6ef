// Dev program that fills a folder with generated custom levels, to try the
// browser on a large library.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/sjson"

	"github.com/llehouerou/songbrowser/internal/level"
)

var (
	words   = []string{"Neon", "Echo", "Storm", "Velvet", "Pulse", "Drift", "Ember", "Halo", "Rift", "Static"}
	authors = []string{"Camellia", "Amy", "Bob", "Kurorak", "Nitro", "Riot", "Sora"}
)

func main() {
	dest := flag.String("dest", "", "folder to create levels in")
	count := flag.Int("n", 500, "number of levels")
	legacy := flag.Bool("legacy", false, "write info.json instead of info.dat")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *dest == "" {
		log.Fatal("-dest is required")
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	start := time.Now().Add(-365 * 24 * time.Hour)

	for i := range *count {
		name := fmt.Sprintf("%s %s", words[rng.IntN(len(words))], words[rng.IntN(len(words))])
		author := authors[rng.IntN(len(authors))]
		folder := filepath.Join(*dest, fmt.Sprintf("%04d %s - %s", i, name, author))

		if err := os.MkdirAll(folder, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", folder, err)
		}

		data, infoName, err := buildInfo(rng, name, author, *legacy)
		if err != nil {
			log.Fatalf("Failed to build info for %s: %v", folder, err)
		}
		infoPath := filepath.Join(folder, infoName)
		if err := os.WriteFile(infoPath, data, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", infoPath, err)
		}

		// Spread creation times so Original/Newest have something to sort
		created := start.Add(time.Duration(rng.Int64N(int64(365 * 24 * time.Hour))))
		if err := os.Chtimes(infoPath, created, created); err != nil {
			log.Fatalf("Failed to set times on %s: %v", infoPath, err)
		}
	}

	log.Printf("Created %d levels in %s", *count, *dest)
}

func buildInfo(rng *rand.Rand, name, author string, legacy bool) ([]byte, string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}

	if legacy {
		set("songName", name)
		set("authorName", author)
		set("beatsPerMinute", 90+rng.IntN(110))
		for d := range level.DifficultyCount {
			if rng.IntN(2) == 0 {
				set("difficultyLevels.-1.difficulty", level.Difficulty(d).String())
			}
		}
		return []byte(doc), "info.json", err
	}

	set("_version", "2.0.0")
	set("_songName", name)
	set("_songAuthorName", author)
	set("_levelAuthorName", "genlevels")
	set("_beatsPerMinute", 90+rng.IntN(110))
	set("_difficultyBeatmapSets.0._beatmapCharacteristicName", "Standard")
	n := 0
	for d := range level.DifficultyCount {
		if rng.IntN(2) == 0 {
			set(fmt.Sprintf("_difficultyBeatmapSets.0._difficultyBeatmaps.%d._difficulty", n), level.Difficulty(d).String())
			n++
		}
	}
	return []byte(doc), "info.dat", err
}
