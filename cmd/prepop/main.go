/*
Prepop compiles a prepopulated careers JSON file into the msgpack snapshot
the server loads at startup.

	prepop -in data/prepopulated-careers.json -out data/careers.bin

The snapshot keeps the raw records as-is; alias resolution still happens at
server load time, so a snapshot compiled from older data files stays valid.
*/
package main

import (
	"flag"
	"os"

	"github.com/shawnasapp/careerserve/internal/logger"
	"github.com/shawnasapp/careerserve/pkg/career"
)

func main() {
	in := flag.String("in", "data/prepopulated-careers.json", "source careers JSON file")
	out := flag.String("out", "data/careers.bin", "snapshot output path")
	check := flag.Bool("check", false, "load the written snapshot back and report record counts")
	flag.Parse()

	log := logger.New("prepop")

	count, err := career.CompileSnapshot(*in, *out)
	if err != nil {
		log.Errorf("Compile failed: %v", err)
		os.Exit(1)
	}
	log.Infof("Wrote %d records to %s", count, *out)

	if *check {
		records, err := career.LoadRecords(*out)
		if err != nil {
			log.Errorf("Snapshot verification failed: %v", err)
			os.Exit(1)
		}
		if dropped := count - len(records); dropped > 0 {
			log.Warnf("%d records will be dropped at load time (no usable title)", dropped)
		}
		log.Infof("Snapshot loads cleanly: %d usable records", len(records))
	}
}
