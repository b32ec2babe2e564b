package emotion

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/vocabulary"
)

// NoTopEmotion is shown when there are no tags at all.
const NoTopEmotion = "N/A"

type Options struct {
	PieLimit    int
	WindowDays  int
	SeriesLimit int
	Vocabulary  *vocabulary.Vocabulary
}

func (o Options) withDefaults() Options {
	if o.PieLimit == 0 {
		o.PieLimit = DefaultPieLimit
	}
	if o.WindowDays == 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.SeriesLimit == 0 {
		o.SeriesLimit = DefaultSeriesLimit
	}
	if o.Vocabulary == nil {
		o.Vocabulary = vocabulary.Default()
	}
	return o
}

// Dashboard is the statistics block rendered by the dashboard screen.
type Dashboard struct {
	TotalEntries    int         `json:"total_entries"`
	UniqueEmotions  int         `json:"unique_emotions"`
	TopEmotion      string      `json:"top_emotion"`
	TopEmotionCount int         `json:"top_emotion_count"`
	PieData         []Slice     `json:"pie_data"`
	LineData        []DayBucket `json:"line_data"`
	ChartEmotions   []string    `json:"chart_emotions"`
	HasData         bool        `json:"has_data"`
}

// BuildDashboard aggregates entries relative to reference. Empty input yields
// the "no data" dashboard rather than an error.
func BuildDashboard(entries []models.DiaryEntry, reference time.Time, opts Options) Dashboard {
	opts = opts.withDefaults()
	counts := CountEmotions(entries)

	pie := TopPieSlices(counts, opts.PieLimit)
	for i := range pie {
		pie[i].Fill = opts.Vocabulary.Color(pie[i].Emotion)
	}

	chart := []string{}
	for _, emotion := range ranked(counts) {
		if len(chart) == opts.SeriesLimit {
			break
		}
		chart = append(chart, emotion)
	}

	d := Dashboard{
		TotalEntries:   len(entries),
		UniqueEmotions: UniqueEmotionCount(counts),
		TopEmotion:     NoTopEmotion,
		PieData:        pie,
		LineData:       RollingDailySeries(entries, opts.WindowDays, reference),
		ChartEmotions:  chart,
		HasData:        len(entries) > 0,
	}
	if top, ok := TopEmotionLabel(counts); ok {
		d.TopEmotion = top.Label
		d.TopEmotionCount = top.Count
	}
	return d
}

// Empty is the dashboard for a user with no entries.
func Empty(reference time.Time, opts Options) Dashboard {
	return BuildDashboard(nil, reference, opts)
}
