package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"second-earth/server/logging"
	"second-earth/server/logging/generation"
	"second-earth/server/logging/sinks"
	"second-earth/server/terrain/catalog"
	"second-earth/server/world"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configDir := flag.String("config", catalog.DefaultDir(), "terrain catalog directory")
	seed := flag.String("seed", world.DefaultSeed, "world generation seed")
	width := flag.Int("width", world.DefaultWidth, "strategic map width")
	height := flag.Int("height", world.DefaultHeight, "strategic map height")
	logJSON := flag.String("log-json", "", "append JSON log events to this file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := newRouter(*logJSON)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(closeCtx)
	}()

	catalogs, err := catalog.Load(*configDir)
	if err != nil {
		log.Fatalf("load catalogs from %s: %v", *configDir, err)
	}
	for _, warning := range catalogs.Warnings {
		generation.CatalogWarning(ctx, router, warning)
	}
	generation.CatalogLoaded(ctx, router, generation.CatalogLoadedPayload{
		Terrains: catalogs.Registry.Len(),
		Features: len(catalogs.Features),
		Warnings: len(catalogs.Warnings),
	})

	rebuild := func(seed string) (*world.World, error) {
		return world.New(world.Config{
			GridType: world.GridTypeStrategic,
			Width:    *width,
			Height:   *height,
			Seed:     seed,
		}, world.Deps{
			Registry:  catalogs.Registry,
			Resources: catalogs.Resources,
			Features:  catalogs.Features,
			Publisher: router,
		})
	}

	w, err := rebuild(*seed)
	if err != nil {
		log.Fatalf("construct world: %v", err)
	}
	if err := w.Generate(ctx); err != nil {
		log.Fatalf("generate world: %v", err)
	}

	hub := newHub(w, rebuild)
	mux := http.NewServeMux()
	registerRoutes(ctx, mux, hub)

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("server listening on %s", *addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

func newRouter(jsonPath string) *logging.Router {
	cfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)},
	}
	if jsonPath != "" {
		cfg.EnabledSinks = append(cfg.EnabledSinks, "json")
		cfg.JSON.FilePath = jsonPath
		jsonSink, err := sinks.NewJSONSink(cfg.JSON)
		if err != nil {
			log.Fatalf("open json log %s: %v", jsonPath, err)
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: jsonSink})
	}

	router, err := logging.NewRouter(nil, cfg, named)
	if err != nil {
		log.Fatalf("construct log router: %v", err)
	}
	return router
}

func registerRoutes(ctx context.Context, mux *http.ServeMux, hub *Hub) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/world", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, hub.worldSnapshot())
	})

	mux.HandleFunc("/world/save", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, hub.SaveRecord())
	})

	mux.HandleFunc("/world/load", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var record world.GridRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, "malformed grid record: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := hub.LoadRecord(r.Context(), record); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}
		id, sub, err := hub.Subscribe(conn)
		if err != nil {
			log.Printf("initial snapshot failed: %v", err)
			return
		}
		go hub.readLoop(ctx, id, sub)
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
