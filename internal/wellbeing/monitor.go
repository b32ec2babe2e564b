// Package wellbeing flags a sustained run of negative emotions across the
// most recent diary entries.
package wellbeing

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/models"
)

// RecentWindow is how many of the newest entries the rule looks at.
const RecentWindow = 3

const (
	AdvisoryTitle   = "Alerta de Bem-Estar Emocional"
	AdvisoryMessage = "Detetámos que as suas últimas 3 entradas contêm emoções negativas persistentes. A sua saúde emocional é importante. Considere:"
	AdvisoryNote    = "Lembre-se: pedir ajuda é um sinal de força, não de fraqueza."
)

var advisorySuggestions = []string{
	"Falar com alguém de confiança",
	"Praticar atividades que lhe dão prazer",
	"Procurar apoio profissional se necessário",
	"Fazer uma pausa e cuidar de si",
}

// Advisory is what the client shows once when the alert is raised.
type Advisory struct {
	Alert       bool     `json:"alert"`
	Title       string   `json:"title,omitempty"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Note        string   `json:"note,omitempty"`
}

type Monitor struct {
	terms []string
}

// NewMonitor builds a monitor over the given negative terms. Terms are
// lowercased; blank ones are dropped.
func NewMonitor(terms []string) *Monitor {
	m := &Monitor{}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			m.terms = append(m.terms, t)
		}
	}
	return m
}

// IsNegative reports whether the lowercased tag contains any negative term.
func (m *Monitor) IsNegative(tag string) bool {
	tag = strings.ToLower(tag)
	for _, term := range m.terms {
		if strings.Contains(tag, term) {
			return true
		}
	}
	return false
}

func (m *Monitor) hasNegative(e models.DiaryEntry) bool {
	for _, tag := range e.Tags() {
		if m.IsNegative(tag) {
			return true
		}
	}
	return false
}

// Check expects entries newest first. It is true only when each of the first
// RecentWindow entries carries at least one negative tag.
func (m *Monitor) Check(entries []models.DiaryEntry) bool {
	if len(entries) < RecentWindow {
		return false
	}
	for _, e := range entries[:RecentWindow] {
		if !m.hasNegative(e) {
			return false
		}
	}
	return true
}

// Evaluate wraps Check with the advisory text.
func (m *Monitor) Evaluate(entries []models.DiaryEntry) Advisory {
	if !m.Check(entries) {
		return Advisory{Alert: false}
	}
	return Advisory{
		Alert:       true,
		Title:       AdvisoryTitle,
		Message:     AdvisoryMessage,
		Suggestions: append([]string(nil), advisorySuggestions...),
		Note:        AdvisoryNote,
	}
}
