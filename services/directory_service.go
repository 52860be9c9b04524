package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eduleave-api/models"

	"gorm.io/gorm"
)

const departmentTTL = 5 * time.Minute

type departmentCacheEntry struct {
	rows      []models.Department
	fetchedAt time.Time
}

// DirectoryService serves the read-only department, class and user lists.
type DirectoryService struct {
	db *gorm.DB

	cacheMu sync.RWMutex
	cache   *departmentCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db, ttl: departmentTTL, now: time.Now}
}

func (s *DirectoryService) loadDepartments(ctx context.Context) (*departmentCacheEntry, error) {
	s.cacheMu.RLock()
	cached := s.cache
	s.cacheMu.RUnlock()

	if cached != nil && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached, nil
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cache != nil && s.now().Sub(s.cache.fetchedAt) < s.ttl {
		return s.cache, nil
	}

	rows := make([]models.Department, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}

	entry := &departmentCacheEntry{rows: rows, fetchedAt: s.now()}
	s.cache = entry
	return entry, nil
}

// ListDepartments returns every department ordered by name.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	entry, err := s.loadDepartments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Department, len(entry.rows))
	copy(out, entry.rows)
	return out, nil
}

// ListClasses returns classes with advisor and department names, optionally
// restricted to one department.
func (s *DirectoryService) ListClasses(ctx context.Context, departmentID *uint) ([]models.ClassView, error) {
	q := s.db.WithContext(ctx).
		Table("classes AS c").
		Select("c.*, a.name AS advisor_name, d.name AS department_name").
		Joins("LEFT JOIN users a ON c.advisor_id = a.id").
		Joins("LEFT JOIN departments d ON c.department_id = d.id")
	if departmentID != nil {
		q = q.Where("c.department_id = ?", *departmentID)
	}

	rows := make([]models.ClassView, 0)
	if err := q.Order("c.name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return rows, nil
}

// ListUsers returns every user with department and class names, ordered by
// role then name. Only admins may call it.
func (s *DirectoryService) ListUsers(ctx context.Context, requester *models.User) ([]models.UserView, error) {
	if requester == nil || requester.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	rows := make([]models.UserView, 0)
	if err := s.db.WithContext(ctx).
		Table("users AS u").
		Select("u.*, d.name AS department_name, c.name AS class_name").
		Joins("LEFT JOIN departments d ON u.department_id = d.id").
		Joins("LEFT JOIN classes c ON u.class_id = c.id").
		Order("u.role, u.name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return rows, nil
}
