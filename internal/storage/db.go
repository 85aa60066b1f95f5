package storage

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ReportModel is a persisted PII detection report.
type ReportModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"user_id"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url,omitempty"`
	Title       string    `json:"title"`
	ReportText  string    `json:"report_text"`
	RiskLevel   string    `json:"risk_level"`
	RiskScore   int       `json:"risk_score"`
	DetectedAny bool      `json:"detected_any"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store wraps the report database.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the SQLite database at path. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ReportModel{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveReport inserts a report and fills in its ID.
func (s *Store) SaveReport(r *ReportModel) error {
	return s.db.Create(r).Error
}

// ListReports returns a user's reports, newest first. An empty userID lists
// everything.
func (s *Store) ListReports(userID string) ([]ReportModel, error) {
	var reports []ReportModel
	q := s.db.Order("created_at desc")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&reports).Error
	return reports, err
}

// GetReport fetches one report by ID.
func (s *Store) GetReport(id uint) (*ReportModel, error) {
	var report ReportModel
	if err := s.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteReport removes one report by ID.
func (s *Store) DeleteReport(id uint) error {
	return s.db.Delete(&ReportModel{}, id).Error
}
