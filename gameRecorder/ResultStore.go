package gameRecorder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// EpisodeSummary is one finished episode as stored in the results database.
type EpisodeSummary struct {
	EpisodeID   string    `db:"episode_id"`
	Iteration   int       `db:"iteration"`
	Rounds      int       `db:"rounds"`
	Mechanism   string    `db:"mechanism"`
	RewardType  string    `db:"reward_type"`
	LevelCap    int       `db:"level_cap"`
	FinalLevels string    `db:"final_levels"` // JSON array
	Winners     string    `db:"winners"`      // JSON array of player indices
	FinishedAt  time.Time `db:"finished_at"`
}

func NewEpisodeSummary(episodeID uuid.UUID, iteration, rounds int, mechanism, rewardType string, levelCap int, finalLevels, winners []int) (EpisodeSummary, error) {
	levelsJSON, err := json.Marshal(finalLevels)
	if err != nil {
		return EpisodeSummary{}, fmt.Errorf("marshal levels: %w", err)
	}
	if winners == nil {
		winners = []int{}
	}
	winnersJSON, err := json.Marshal(winners)
	if err != nil {
		return EpisodeSummary{}, fmt.Errorf("marshal winners: %w", err)
	}
	return EpisodeSummary{
		EpisodeID:   episodeID.String(),
		Iteration:   iteration,
		Rounds:      rounds,
		Mechanism:   mechanism,
		RewardType:  rewardType,
		LevelCap:    levelCap,
		FinalLevels: string(levelsJSON),
		Winners:     string(winnersJSON),
		FinishedAt:  time.Now().UTC(),
	}, nil
}

// ResultStore appends episode summaries to a SQLite file. Nothing is ever read
// back into a running game.
type ResultStore struct {
	conn *sqlx.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	store := &ResultStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (rs *ResultStore) Close() error {
	return rs.conn.Close()
}

func (rs *ResultStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		episode_id TEXT NOT NULL,
		iteration INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		mechanism TEXT NOT NULL,
		reward_type TEXT NOT NULL,
		level_cap INTEGER NOT NULL,
		final_levels TEXT NOT NULL,
		winners TEXT NOT NULL,
		finished_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_episodes_episode_id ON episodes(episode_id);
	`
	_, err := rs.conn.Exec(schema)
	return err
}

func (rs *ResultStore) SaveEpisode(summary EpisodeSummary) error {
	_, err := rs.conn.NamedExec(`INSERT INTO episodes
		(episode_id, iteration, rounds, mechanism, reward_type, level_cap, final_levels, winners, finished_at)
		VALUES (:episode_id, :iteration, :rounds, :mechanism, :reward_type, :level_cap, :final_levels, :winners, :finished_at)`,
		summary)
	if err != nil {
		return fmt.Errorf("save episode %s: %w", summary.EpisodeID, err)
	}
	return nil
}

// SaveEpisodes writes a batch in one transaction.
func (rs *ResultStore) SaveEpisodes(summaries []EpisodeSummary) error {
	tx, err := rs.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, summary := range summaries {
		if _, err := tx.NamedExec(`INSERT INTO episodes
			(episode_id, iteration, rounds, mechanism, reward_type, level_cap, final_levels, winners, finished_at)
			VALUES (:episode_id, :iteration, :rounds, :mechanism, :reward_type, :level_cap, :final_levels, :winners, :finished_at)`,
			summary); err != nil {
			return fmt.Errorf("save episode %s: %w", summary.EpisodeID, err)
		}
	}
	return tx.Commit()
}

func (rs *ResultStore) CountEpisodes() (int, error) {
	var count int
	if err := rs.conn.Get(&count, "SELECT COUNT(*) FROM episodes"); err != nil {
		return 0, fmt.Errorf("count episodes: %w", err)
	}
	return count, nil
}

// WinCounts tallies, per mechanism, how many stored episodes each player won.
func (rs *ResultStore) WinCounts(mechanism string) (map[int]int, error) {
	var rows []string
	if err := rs.conn.Select(&rows, "SELECT winners FROM episodes WHERE mechanism = ?", mechanism); err != nil {
		return nil, fmt.Errorf("load winners: %w", err)
	}
	counts := make(map[int]int)
	for _, row := range rows {
		var winners []int
		if err := json.Unmarshal([]byte(row), &winners); err != nil {
			return nil, fmt.Errorf("decode winners %q: %w", row, err)
		}
		for _, w := range winners {
			counts[w]++
		}
	}
	return counts, nil
}
