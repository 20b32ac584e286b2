package gameServer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"github.com/ADimoska/KingshipSim/common"
	"github.com/ADimoska/KingshipSim/gameRecorder"
)

const MinPlayers = 3

// GameServer runs one kingship game at a time. It is single threaded: one
// round is fully resolved (king asked, outcome drawn, rewards paid) before
// the next one starts.
type GameServer struct {
	EpisodeID uuid.UUID

	players    []common.IKingshipAgent
	mechanism  common.IMechanism
	levels     []int
	king       int
	cap        int
	rewardType common.RewardType
	round      int

	rng    *rand.Rand
	logger *slog.Logger

	// optional, every round is recorded when set
	DataRecorder *gameRecorder.ServerDataRecorder
}

// EpisodeResult is what RunIterations reports for each finished game.
type EpisodeResult struct {
	EpisodeID   uuid.UUID
	Iteration   int
	Rounds      int
	FinalLevels []int
	Winners     []int
}

// CreateGameServer checks the configuration and deals the first king. Player i
// must report GetID() == i.
func CreateGameServer(players []common.IKingshipAgent, mechanism common.IMechanism, cap int, rewardType common.RewardType, rng *rand.Rand, logger *slog.Logger) (*GameServer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(players) < MinPlayers {
		logger.Error("Not enough players.", "critical", true, "players", len(players), "min", MinPlayers)
		return nil, fmt.Errorf("%w: got %d, need at least %d", common.ErrNotEnoughPlayers, len(players), MinPlayers)
	}
	if cap <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidCap, cap)
	}
	rewardType, err := common.ParseRewardType(string(rewardType))
	if err != nil {
		return nil, err
	}
	for i, player := range players {
		if player.GetID() != i {
			return nil, fmt.Errorf("player at index %d reports id %d", i, player.GetID())
		}
	}

	gs := &GameServer{
		players:    players,
		mechanism:  mechanism,
		cap:        cap,
		rewardType: rewardType,
		rng:        rng,
		logger:     logger,
	}
	gs.Reset()

	logger.Info(fmt.Sprintf("%s currently playing", mechanism.Name()),
		"players", len(players), "cap", cap, "reward", string(rewardType), "king", gs.king)
	logger.Info("Players: " + fmt.Sprint(lo.Map(players, func(p common.IKingshipAgent, _ int) string { return p.String() })))
	return gs, nil
}

// ---------- Getters ----------

func (gs *GameServer) GetPlayers() []common.IKingshipAgent {
	return gs.players
}

func (gs *GameServer) GetLevels() []int {
	return common.CopyLevels(gs.levels)
}

func (gs *GameServer) GetKing() int {
	return gs.king
}

func (gs *GameServer) GetRound() int {
	return gs.round
}

func (gs *GameServer) GetCap() int {
	return gs.cap
}

func (gs *GameServer) GetMechanism() common.IMechanism {
	return gs.mechanism
}

func (gs *GameServer) GetRewardType() common.RewardType {
	return gs.rewardType
}

func (gs *GameServer) IsGameOver() bool {
	return common.ReachedCap(gs.levels, gs.cap)
}

// Winners lists every player at or above the cap.
func (gs *GameServer) Winners() []int {
	return lo.Filter(lo.Range(len(gs.levels)), func(i int, _ int) bool { return gs.levels[i] >= gs.cap })
}

// ---------- Game loop ----------

// Reset starts a new episode: levels back to zero, a fresh king and episode ID.
// Learned agent state is kept.
func (gs *GameServer) Reset() {
	gs.levels = make([]int, len(gs.players))
	gs.king = gs.rng.Intn(len(gs.players))
	gs.round = 0
	gs.EpisodeID = uuid.New()
	gs.syncLevels()
}

// Step plays a single round and reports whether the game is now over.
func (gs *GameServer) Step() (bool, error) {
	if gs.IsGameOver() {
		return true, fmt.Errorf("%w: episode %s after %d rounds", common.ErrGameOver, gs.EpisodeID, gs.round)
	}

	gs.round++
	gs.logger.Debug(fmt.Sprintf("Round %d", gs.round), "levels", gs.levels, "king", gs.king)

	outcome, err := gs.mechanism.Play(gs.king, gs.players, common.CopyLevels(gs.levels), gs.cap)
	if err != nil {
		return false, fmt.Errorf("round %d, king %d: %w", gs.round, gs.king, err)
	}
	if len(outcome.Levels) != len(gs.levels) {
		return false, fmt.Errorf("round %d: mechanism %s returned %d levels for %d players",
			gs.round, gs.mechanism.Name(), len(outcome.Levels), len(gs.levels))
	}

	oldLevels := gs.levels
	gs.levels = outcome.Levels
	gs.syncLevels()
	rewards := gs.payRewards(gs.king, oldLevels, gs.levels)

	if gs.DataRecorder != nil {
		gs.DataRecorder.RecordNewTurn(gameRecorder.TurnRecord{
			King:        gs.king,
			Friend:      outcome.Friend,
			Sabotaged:   outcome.Sabotaged,
			Probability: outcome.Probability,
			Increment:   outcome.Increment,
			OldLevels:   common.CopyLevels(oldLevels),
			NewLevels:   common.CopyLevels(gs.levels),
			Rewards:     rewards,
		})
	}

	gs.king = (gs.king + 1) % len(gs.players)
	return gs.IsGameOver(), nil
}

// Play runs rounds until somebody reaches the cap. It never returns if the
// mechanism cannot succeed for the kings' choices (e.g. all skills zero).
func (gs *GameServer) Play() error {
	for !gs.IsGameOver() {
		if _, err := gs.Step(); err != nil {
			return err
		}
	}
	gs.LogPlayerStatus()
	return nil
}

// RunIterations plays n complete episodes back to back. Agents keep what they
// learned between episodes.
func (gs *GameServer) RunIterations(n int) ([]EpisodeResult, error) {
	results := make([]EpisodeResult, 0, n)
	for iteration := 0; iteration < n; iteration++ {
		if gs.round > 0 || gs.IsGameOver() {
			gs.Reset()
		}
		gs.logger.Info(fmt.Sprintf("--------Start of iteration %v---------", iteration), "episode", gs.EpisodeID)
		if gs.DataRecorder != nil {
			gs.DataRecorder.RecordNewIteration(gs.EpisodeID)
		}
		if err := gs.Play(); err != nil {
			return results, fmt.Errorf("iteration %d: %w", iteration, err)
		}
		results = append(results, EpisodeResult{
			EpisodeID:   gs.EpisodeID,
			Iteration:   iteration,
			Rounds:      gs.round,
			FinalLevels: gs.GetLevels(),
			Winners:     gs.Winners(),
		})
	}
	return results, nil
}

func (gs *GameServer) LogPlayerStatus() {
	gs.logger.Info("Game results:", "episode", gs.EpisodeID, "rounds", gs.round, "winners", gs.Winners())
	for _, player := range gs.players {
		gs.logger.Info(player.String())
	}
}

func (gs *GameServer) syncLevels() {
	for i, player := range gs.players {
		player.SetLevel(gs.levels[i])
	}
}
