package main

import (
	"flag"
	"math/rand"

	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", "ghetto_test", "id of the level to start in")
	frames := flag.Int("frames", 600, "number of simulation steps to run, 0 for unlimited")
	seed := flag.Int64("seed", 0, "random seed for level generation, 0 for random")
	watch := flag.Bool("watch", false, "reload entity templates when prefab files change on disk")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if *seed == 0 {
		*seed = rand.Int63()
	}

	game, err := NewGame(*levelName, *seed, *watch)
	if err != nil {
		logrus.WithError(err).Fatal("game setup failed")
	}
	defer game.Close()

	if err := game.Run(*frames); err != nil {
		logrus.WithError(err).Fatal("game loop failed")
	}
}
