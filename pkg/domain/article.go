package domain

import "time"

// ArticleStatus is the moderation lifecycle status of an article
type ArticleStatus string

// article statuses
const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPending   ArticleStatus = "PENDING"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusRejected  ArticleStatus = "REJECTED"
)

// Article is a stored news article. SourceURL is globally unique.
type Article struct {
	ID             int64
	Title          string
	Content        string
	Summary        string
	RSSDescription string
	SourceURL      string
	ImageURL       string
	PublishedAt    time.Time
	Status         ArticleStatus
	CategoryID     *int64
	SourceID       *int64
	CreatorID      *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Category groups articles by topic
type Category struct {
	ID          int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

// NeutralColor is the display color of categories created without a seed entry
const NeutralColor = "#6c757d"

// DefaultCategories is the built-in category seed
func DefaultCategories() []Category {
	return []Category{
		{Name: "Технологии", Description: "Новости из мира технологий и IT", Color: "#007bff"},
		{Name: "Политика", Description: "Политические новости и события", Color: "#dc3545"},
		{Name: "Экономика", Description: "Экономические новости и аналитика", Color: "#28a745"},
		{Name: "Спорт", Description: "Спортивные новости и результаты", Color: "#fd7e14"},
		{Name: "Наука", Description: "Научные открытия и исследования", Color: "#6f42c1"},
		{Name: "Культура", Description: "Культурные события и искусство", Color: "#e83e8c"},
		{Name: "Здоровье", Description: "Новости медицины и здравоохранения", Color: "#20c997"},
		{Name: "Образование", Description: "Новости образования и науки", Color: "#6c757d"},
		{Name: "Общество", Description: "Общественные события и социальные вопросы", Color: "#ffc107"},
		{Name: "Мир", Description: "Международные новости", Color: "#17a2b8"},
	}
}
