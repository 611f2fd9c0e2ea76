// Command fakebackend runs the in-memory campus backend for local work on
// the portal without the real service.
package main

import (
	"flag"
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/testing/fakebackend"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", "localhost:5000", "listen address")
	fixture := flag.String("fixture", "", "optional JSON file with users and events")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	b := fakebackend.New()
	if *fixture != "" {
		if err := b.Seed(*fixture); err != nil {
			log.Fatal("failed to seed fake backend", zap.String("fixture", *fixture), zap.Error(err))
		}
	}

	log.Info("fake backend listening", zap.String("addr", *addr), zap.String("base_url", "http://"+*addr+fakebackend.Prefix))
	if err := http.ListenAndServe(*addr, b.Handler()); err != nil {
		log.Fatal("fake backend stopped", zap.Error(err))
	}
}
