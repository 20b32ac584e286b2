package gameRecorder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
)

// CreatePlaybackHTML renders one level-trajectory chart per iteration into a
// single HTML page.
func CreatePlaybackHTML(recorder *ServerDataRecorder, outputPath string) error {
	page := components.NewPage()
	page.SetPageTitle("Kingship playback")

	for iteration, turns := range recorder.EpisodeRecords() {
		if len(turns) == 0 {
			continue
		}
		page.AddCharts(levelChart(iteration, turns))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating html directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer file.Close()

	return page.Render(file)
}

func levelChart(iteration int, turns []TurnRecord) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Iteration " + strconv.Itoa(iteration),
			Subtitle: turns[0].EpisodeID.String(),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Round"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Level"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	// round 0 is the state before the first turn
	rounds := append([]int{0}, lo.Map(turns, func(t TurnRecord, _ int) int { return t.TurnNumber })...)
	line.SetXAxis(rounds)

	numPlayers := len(turns[0].OldLevels)
	for player := 0; player < numPlayers; player++ {
		data := []opts.LineData{{Value: turns[0].OldLevels[player]}}
		for _, turn := range turns {
			data = append(data, opts.LineData{Value: turn.NewLevels[player]})
		}
		line.AddSeries("Player "+strconv.Itoa(player), data)
	}
	return line
}
