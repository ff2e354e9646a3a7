// Package report implements the error-reporting collaborator the
// validation service hands its findings to. Persistence, export, and
// statistics of historical reports live here, outside the validators.
package report

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category groups reports by the subsystem that produced them.
type Category string

const (
	CategoryGeometry   Category = "GEOMETRY"
	CategoryExport     Category = "EXPORT"
	CategoryValidation Category = "VALIDATION"
)

// Severity is the reporting system's own scale. Validation warnings map
// to SeverityInfo.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
	SeverityInfo     Severity = "INFO"
)

// Report is one stored finding.
type Report struct {
	ID          string            `json:"id"`
	Category    Category          `json:"category"`
	Severity    Severity          `json:"severity"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Context     map[string]string `json:"context,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Statistics aggregates stored reports.
type Statistics struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"byCategory"`
	BySeverity map[Severity]int `json:"bySeverity"`
}

// Reporter is the interface the validation service depends on.
// Registration is best-effort from the service's point of view: a
// failing reporter never changes a validation result.
type Reporter interface {
	ReportCustomError(category Category, severity Severity, title, description string, context map[string]string) (string, error)
	GetReport(id string) (*Report, bool)
}

// MemoryReporter stores reports in memory, keyed by generated uuid.
type MemoryReporter struct {
	mu      sync.RWMutex
	reports map[string]*Report
	order   []string
}

// NewMemoryReporter creates an empty reporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{
		reports: make(map[string]*Report),
	}
}

// ReportCustomError stores a report and returns its generated id.
func (m *MemoryReporter) ReportCustomError(category Category, severity Severity, title, description string, context map[string]string) (string, error) {
	rep := &Report{
		ID:          uuid.NewString(),
		Category:    category,
		Severity:    severity,
		Title:       title,
		Description: description,
		Context:     context,
		CreatedAt:   time.Now(),
	}

	m.mu.Lock()
	m.reports[rep.ID] = rep
	m.order = append(m.order, rep.ID)
	m.mu.Unlock()

	return rep.ID, nil
}

// GetReport returns the stored report for an id.
func (m *MemoryReporter) GetReport(id string) (*Report, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rep, ok := m.reports[id]
	return rep, ok
}

// Reports returns all stored reports in insertion order.
func (m *MemoryReporter) Reports() []*Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Report, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.reports[id])
	}
	return out
}

// Statistics aggregates counts by category and severity.
func (m *MemoryReporter) Statistics() Statistics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Statistics{
		Total:      len(m.reports),
		ByCategory: make(map[Category]int),
		BySeverity: make(map[Severity]int),
	}
	for _, rep := range m.reports {
		stats.ByCategory[rep.Category]++
		stats.BySeverity[rep.Severity]++
	}
	return stats
}

// ExportJSON serializes all reports in insertion order.
func (m *MemoryReporter) ExportJSON() ([]byte, error) {
	reports := m.Reports()
	return json.MarshalIndent(reports, "", "  ")
}

// Clear drops all stored reports.
func (m *MemoryReporter) Clear() {
	m.mu.Lock()
	m.reports = make(map[string]*Report)
	m.order = nil
	m.mu.Unlock()
}
