package gameRecorder

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// TurnRecord is one round of one iteration.
type TurnRecord struct {
	TurnNumber      int
	IterationNumber int
	EpisodeID       uuid.UUID

	King        int
	Friend      int
	Sabotaged   bool
	Probability float64
	Increment   int

	OldLevels []int
	NewLevels []int
	Rewards   []float64 // zero for players that were not paid this round
}

// --------- Server Recording Functions ---------
type ServerDataRecorder struct {
	TurnRecords []TurnRecord // where all our info is stored!

	currentIteration int
	currentTurn      int
	currentEpisode   uuid.UUID
}

func CreateRecorder() *ServerDataRecorder {
	return &ServerDataRecorder{
		TurnRecords:      []TurnRecord{},
		currentIteration: -1, // to start from 0
		currentTurn:      -1,
	}
}

func (sdr *ServerDataRecorder) RecordNewIteration(episodeID uuid.UUID) {
	sdr.currentIteration += 1
	sdr.currentTurn = 0
	sdr.currentEpisode = episodeID
}

// RecordNewTurn stamps the record with the current iteration, turn and episode.
func (sdr *ServerDataRecorder) RecordNewTurn(record TurnRecord) {
	if sdr.currentIteration < 0 {
		sdr.RecordNewIteration(uuid.Nil)
	}
	sdr.currentTurn += 1
	record.TurnNumber = sdr.currentTurn
	record.IterationNumber = sdr.currentIteration
	record.EpisodeID = sdr.currentEpisode
	sdr.TurnRecords = append(sdr.TurnRecords, record)
}

func (sdr *ServerDataRecorder) IterationCount() int {
	return sdr.currentIteration + 1
}

// EpisodeRecords groups the turn records by iteration, in iteration order.
// Iterations without turns come back as empty slices.
func (sdr *ServerDataRecorder) EpisodeRecords() [][]TurnRecord {
	episodes := make([][]TurnRecord, sdr.IterationCount())
	grouped := lo.GroupBy(sdr.TurnRecords, func(r TurnRecord) int { return r.IterationNumber })
	for i := range episodes {
		episodes[i] = grouped[i]
	}
	return episodes
}

func (sdr *ServerDataRecorder) GamePlaybackSummary(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Game playback summary", "iterations", sdr.IterationCount(), "turns", len(sdr.TurnRecords))
	for _, turnRecord := range sdr.TurnRecords {
		logger.Debug("Turn",
			"iteration", turnRecord.IterationNumber,
			"turn", turnRecord.TurnNumber,
			"king", turnRecord.King,
			"friend", turnRecord.Friend,
			"sabotaged", turnRecord.Sabotaged,
			"p", turnRecord.Probability,
			"increment", turnRecord.Increment,
			"levels", turnRecord.NewLevels)
	}
}
