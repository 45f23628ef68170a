package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vertex-lab/socnet/pkg/analytics"
	"github.com/vertex-lab/socnet/pkg/config"
	"github.com/vertex-lab/socnet/pkg/ingest"
	"github.com/vertex-lab/socnet/pkg/network"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const usage = `usage: socnet [command] [args]

commands:
  summary                 global metrics of the network (default)
  json                    global metrics of the network as JSON
  distance   <user> <target>...
  path       <user> <target>...
  centrality <user>
  reachable  <user>
  config                  print the configuration

The follows are loaded from the source specified by the SOURCE env variable.`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	config, err := config.Load()
	if err != nil {
		panic(err)
	}

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "config" {
		fmt.Print(config)
		return
	}

	source, closer, err := openSource(config.Source)
	if err != nil {
		panic(err)
	}
	defer closer.Close()

	follows, err := source.Follows(ctx)
	if err != nil {
		panic(err)
	}

	net, err := network.New(follows)
	if err != nil {
		panic(err)
	}

	slog.Info("network built", "source", config.Source.Source, "users", net.Len(), "follows", net.EdgeCount())

	if err := run(os.Stdout, net, config.Analytics, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command in args against the network, writing the result to w.
// Commands with several targets write one line per target.
func run(w io.Writer, model *network.Model, config config.AnalyticsConfig, args []string) error {
	command := "summary"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	net, err := analytics.WithCache(model, config.CacheSize)
	if err != nil {
		return err
	}

	switch {
	case command == "summary" && len(args) == 0:
		summary, err := analytics.Summarize(net, config.LeaderShare)
		if err != nil {
			return err
		}
		fmt.Fprint(w, summary)

	case command == "json" && len(args) == 0:
		summary, err := analytics.Summarize(net, config.LeaderShare)
		if err != nil {
			return err
		}

		bytes, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal the summary: %w", err)
		}
		fmt.Fprintln(w, string(bytes))

	case command == "distance" && len(args) >= 2:
		for _, target := range args[1:] {
			distance, err := analytics.Distance(net, args[0], target)
			if err != nil {
				return err
			}

			if distance == analytics.Unreachable {
				fmt.Fprintln(w, "unreachable")
				continue
			}
			fmt.Fprintln(w, distance)
		}

	case command == "path" && len(args) >= 2:
		for _, target := range args[1:] {
			path, err := analytics.Path(net, args[0], target)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, path)
		}

	case command == "centrality" && len(args) == 1:
		centrality, err := analytics.Centrality(net, args[0])
		if err != nil {
			return err
		}

		reachable, err := analytics.ReachableCentrality(net, args[0])
		if err != nil {
			slog.Warn("reachable centrality", "error", err)
		}
		fmt.Fprintf(w, "centrality: %v\nreachable centrality: %v\n", centrality, reachable)

	case command == "reachable" && len(args) == 1:
		reachable, err := analytics.Reachable(net, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, reachable)

	default:
		return fmt.Errorf("invalid command %q with %d arguments\n%s", command, len(args), usage)
	}

	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSource returns the source of follows specified in the config, and its closer.
func openSource(config config.SourceConfig) (ingest.Source, io.Closer, error) {
	switch config.Source {
	case "file":
		return ingest.File{Path: config.FollowsFile}, nopCloser{}, nil

	case "redis":
		db, err := ingest.NewRedis(&redis.Options{Addr: config.RedisAddress})
		if err != nil {
			return nil, nil, err
		}

		slog.Info("redis connected", "address", config.RedisAddress)
		return db, db, nil

	case "sqlite":
		store, err := ingest.OpenStore(config.SQLiteURL)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("sqlite connected", "path", config.SQLiteURL)
		return ingest.EventStore{Store: store, Authors: config.Authors}, store, nil

	case "relays":
		source := ingest.Relays{
			URLs:    config.Relays,
			Authors: config.Authors,
			Timeout: config.FetchTimeout,
		}
		return source, nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported source %q", config.Source)
	}
}

// handleSignals listens for OS signals and triggers context cancellation.
func handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	log.Println("signal received. shutting down...")
	cancel()
}
