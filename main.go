package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ADimoska/KingshipSim/config"
	"github.com/ADimoska/KingshipSim/gameRecorder"
	"github.com/ADimoska/KingshipSim/logger"
	gameServer "github.com/ADimoska/KingshipSim/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := parseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "flags:", err)
		os.Exit(2)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, closeLog, err := logger.CreateLogger(level, cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(log)

	log.Info("main function started.", "seed", cfg.Seed, "iterations", cfg.Iterations)

	if err := run(cfg, log); err != nil {
		log.Error("run failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	serv, err := gameServer.MakeGameServer(cfg, log)
	if err != nil {
		return err
	}
	if cfg.OutputDir != "" {
		serv.DataRecorder = gameRecorder.CreateRecorder()
	}

	results, err := serv.RunIterations(cfg.Iterations)
	if err != nil {
		return err
	}

	// record data
	if serv.DataRecorder != nil {
		serv.DataRecorder.GamePlaybackSummary(log)
		if err := gameRecorder.ExportToCSV(serv.DataRecorder, filepath.Join(cfg.OutputDir, "csv_data")); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		if err := gameRecorder.CreatePlaybackHTML(serv.DataRecorder, filepath.Join(cfg.OutputDir, "playback.html")); err != nil {
			return fmt.Errorf("html export: %w", err)
		}
		log.Info("Exported playback", "dir", cfg.OutputDir)
	}

	if cfg.DBPath != "" {
		if err := storeResults(cfg, serv, results, log); err != nil {
			return err
		}
	}
	return nil
}

func storeResults(cfg config.Config, serv *gameServer.GameServer, results []gameServer.EpisodeResult, log *slog.Logger) error {
	store, err := gameRecorder.OpenResultStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries := make([]gameRecorder.EpisodeSummary, 0, len(results))
	for _, result := range results {
		summary, err := gameRecorder.NewEpisodeSummary(result.EpisodeID, result.Iteration, result.Rounds,
			serv.GetMechanism().Name(), string(serv.GetRewardType()), serv.GetCap(), result.FinalLevels, result.Winners)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
	}
	if err := store.SaveEpisodes(summaries); err != nil {
		return err
	}

	total, err := store.CountEpisodes()
	if err != nil {
		return err
	}
	wins, err := store.WinCounts(serv.GetMechanism().Name())
	if err != nil {
		return err
	}
	log.Info("Stored results", "db", cfg.DBPath, "episodes", total, "wins", wins)
	return nil
}

// parseFlags lets command line flags override the loaded configuration.
func parseFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kingship", flag.ContinueOnError)

	agentList := fs.String("agents", strings.Join(cfg.Agents, ","), "comma separated agent kinds, one per player")
	skills := fs.String("skills", strings.Join(lo.Map(cfg.Skills, func(s float64, _ int) string {
		return strconv.FormatFloat(s, 'g', -1, 64)
	}), ","), "comma separated skill per player")
	fs.IntVar(&cfg.Cap, "cap", cfg.Cap, "level cap that ends a game")
	fs.StringVar(&cfg.Mechanism, "mechanism", cfg.Mechanism, "baseline, skill or sabotage")
	fs.Float64Var(&cfg.P, "p", cfg.P, "baseline success probability (or Poisson rate)")
	fs.StringVar(&cfg.Sampler, "sampler", cfg.Sampler, "bernoulli or poisson")
	fs.StringVar(&cfg.RewardType, "reward", cfg.RewardType, "WINNERTAKEALL, PROPORTIONAL, RANKED or WOT")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "number of games to play")
	fs.IntVar(&cfg.VerboseLevel, "verbose", cfg.VerboseLevel, "agent verbosity, above 8 logs agent decisions")
	fs.Float64Var(&cfg.QEpsilon, "epsilon", cfg.QEpsilon, "Q-learning exploration rate")
	fs.Float64Var(&cfg.QAlpha, "alpha", cfg.QAlpha, "Q-learning learning rate")
	fs.Float64Var(&cfg.QGamma, "gamma", cfg.QGamma, "Q-learning discount factor")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for JSON log files, empty to disable")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for CSV and HTML playback, empty to disable")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for episode results, empty to disable")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Agents = config.ParseList(*agentList)
	parsedSkills, err := config.ParseFloats(*skills)
	if err != nil {
		return err
	}
	cfg.Skills = parsedSkills
	return nil
}
