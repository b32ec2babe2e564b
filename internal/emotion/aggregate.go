// Package emotion turns diary entries into dashboard statistics. Everything
// here is a pure function of its input and an explicit reference instant.
package emotion

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
)

const (
	DefaultPieLimit    = 6
	DefaultWindowDays  = 7
	DefaultSeriesLimit = 5
)

// Count maps a lowercase emotion to its number of occurrences. It remembers
// the order in which emotions were first seen so ranking ties are stable.
type Count struct {
	order  []string
	counts map[string]int
}

func newCount() Count {
	return Count{counts: map[string]int{}}
}

func (c *Count) add(emotion string) {
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	if _, ok := c.counts[emotion]; !ok {
		c.order = append(c.order, emotion)
	}
	c.counts[emotion]++
}

// Get returns the count for an emotion, matched case-insensitively.
func (c Count) Get(emotion string) int {
	return c.counts[Normalize(emotion)]
}

// Len is the number of distinct emotions.
func (c Count) Len() int {
	return len(c.order)
}

// Labels lists emotions in first-encounter order.
func (c Count) Labels() []string {
	return append([]string(nil), c.order...)
}

// Total is the sum of all occurrences.
func (c Count) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Map returns a copy of the counts. Never nil.
func (c Count) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Normalize lowercase-folds a tag.
func Normalize(tag string) string {
	return strings.ToLower(tag)
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CountEmotions counts every tag of every entry after lowercase folding.
func CountEmotions(entries []models.DiaryEntry) Count {
	c := newCount()
	for _, e := range entries {
		for _, tag := range e.Tags() {
			c.add(Normalize(tag))
		}
	}
	return c
}

// UniqueEmotionCount is the number of distinct emotions in counts.
func UniqueEmotionCount(counts Count) int {
	return counts.Len()
}

// Slice is one ranked emotion for the distribution chart.
type Slice struct {
	Emotion string `json:"emotion"`
	Label   string `json:"name"`
	Value   int    `json:"value"`
	Fill    string `json:"fill,omitempty"`
}

// ranked returns emotions sorted by count descending, ties in first-encounter order.
func ranked(counts Count) []string {
	labels := counts.Labels()
	sort.SliceStable(labels, func(i, j int) bool {
		return counts.counts[labels[i]] > counts.counts[labels[j]]
	})
	return labels
}

// TopPieSlices returns at most limit slices sorted by count descending.
func TopPieSlices(counts Count, limit int) []Slice {
	slices := []Slice{}
	if limit <= 0 {
		return slices
	}
	for _, emotion := range ranked(counts) {
		if len(slices) == limit {
			break
		}
		slices = append(slices, Slice{
			Emotion: emotion,
			Label:   Capitalize(emotion),
			Value:   counts.counts[emotion],
		})
	}
	return slices
}

// TopEmotion is the single most frequent emotion.
type TopEmotion struct {
	Emotion string
	Label   string
	Count   int
}

// TopEmotionLabel returns the highest-count emotion. The boolean is false
// when counts is empty.
func TopEmotionLabel(counts Count) (TopEmotion, bool) {
	var top TopEmotion
	for _, emotion := range counts.order {
		if n := counts.counts[emotion]; n > top.Count {
			top = TopEmotion{Emotion: emotion, Label: Capitalize(emotion), Count: n}
		}
	}
	return top, top.Count > 0
}

// DayBucket holds the emotions recorded on one calendar day. Day is the full
// ISO date; Date is the dd/MM display key.
type DayBucket struct {
	Day      string         `json:"day"`
	Date     string         `json:"date"`
	Emotions map[string]int `json:"emotions"`
}

// RollingDailySeries builds windowDays consecutive calendar days ending on the
// reference day, oldest first. Days are taken in reference's location.
func RollingDailySeries(entries []models.DiaryEntry, windowDays int, reference time.Time) []DayBucket {
	buckets := []DayBucket{}
	if windowDays <= 0 {
		return buckets
	}

	loc := reference.Location()
	y, m, d := reference.Date()
	last := time.Date(y, m, d, 0, 0, 0, 0, loc)

	index := make(map[string]int, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := last.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		index[key] = len(buckets)
		buckets = append(buckets, DayBucket{
			Day:      key,
			Date:     day.Format("02/01"),
			Emotions: map[string]int{},
		})
	}

	for _, e := range entries {
		pos, ok := index[e.CreatedAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		for _, tag := range e.Tags() {
			buckets[pos].Emotions[Normalize(tag)]++
		}
	}

	return buckets
}
