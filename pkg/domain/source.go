package domain

import "time"

// Source is a configured RSS/Atom feed polled by the ingestion pipeline
type Source struct {
	ID          int64
	Name        string
	RSSURL      string
	WebsiteURL  string
	Description string
	Active      bool
	ErrorCount  int
	LastError   string
	LastUpdated *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HealthState describes source health derived from its error count
type HealthState string

// health states of a source
const (
	HealthHealthy  HealthState = "healthy"
	HealthDegraded HealthState = "degraded"
	HealthDisabled HealthState = "disabled"
)

// Health returns the health state for the given auto-disable threshold
func (s *Source) Health(threshold int) HealthState {
	switch {
	case s.ErrorCount >= threshold:
		return HealthDisabled
	case s.ErrorCount > 0:
		return HealthDegraded
	default:
		return HealthHealthy
	}
}

// DefaultSources is the built-in source seed
func DefaultSources() []Source {
	return []Source{
		{Name: "Хабр", RSSURL: "https://habr.com/ru/rss/hub/programming/", WebsiteURL: "https://habr.com", Active: true},
		{Name: "РИА Новости", RSSURL: "https://ria.ru/export/rss2/archive/index.xml", WebsiteURL: "https://ria.ru", Active: true},
		{Name: "Лента.ру", RSSURL: "https://lenta.ru/rss", WebsiteURL: "https://lenta.ru", Active: true},
		{Name: "Газета.ру", RSSURL: "https://www.gazeta.ru/export/rss/first.xml", WebsiteURL: "https://gazeta.ru", Active: true},
		{Name: "Ведомости", RSSURL: "https://www.vedomosti.ru/rss/news", WebsiteURL: "https://www.vedomosti.ru", Active: true},
	}
}
