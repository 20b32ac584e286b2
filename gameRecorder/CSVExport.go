package gameRecorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var turnsHeader = []string{
	"iteration", "turn", "episode_id", "king", "friend", "sabotaged",
	"probability", "increment", "old_levels", "new_levels", "rewards",
}

// ExportToCSV writes every recorded round to <outputDir>/turns.csv. Vector
// columns are ';' separated.
func ExportToCSV(recorder *ServerDataRecorder, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating csv directory: %w", err)
	}
	file, err := os.Create(filepath.Join(outputDir, "turns.csv"))
	if err != nil {
		return fmt.Errorf("creating turns.csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(turnsHeader); err != nil {
		return err
	}
	for _, record := range recorder.TurnRecords {
		row := []string{
			strconv.Itoa(record.IterationNumber),
			strconv.Itoa(record.TurnNumber),
			record.EpisodeID.String(),
			strconv.Itoa(record.King),
			strconv.Itoa(record.Friend),
			strconv.FormatBool(record.Sabotaged),
			strconv.FormatFloat(record.Probability, 'g', -1, 64),
			strconv.Itoa(record.Increment),
			joinInts(record.OldLevels),
			joinInts(record.NewLevels),
			strings.Join(lo.Map(record.Rewards, func(r float64, _ int) string {
				return strconv.FormatFloat(r, 'g', -1, 64)
			}), ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func joinInts(values []int) string {
	return strings.Join(lo.Map(values, func(v int, _ int) string { return strconv.Itoa(v) }), ";")
}
