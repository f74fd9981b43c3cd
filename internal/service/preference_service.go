package service

import (
	"context"
	"fmt"
)

// IPreferenceRepo 偏好設定的持久化，key-value per user
type IPreferenceRepo interface {
	GetAll(ctx context.Context, userID string) (map[string]string, error)
	Set(ctx context.Context, userID, field, value string) error
}

// Preferences 跨畫面的UI狀態
// 每一項都是獨立的狀態容器，有明確預設值，注入到需要的畫面
type Preferences struct {
	DarkMode         bool `json:"dark_mode"`
	SidebarCollapsed bool `json:"sidebar_collapsed"`
	AdminMode        bool `json:"admin_mode"`
}

// DefaultPreferences 沒有任何持久化紀錄時的預設
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode:         false,
		SidebarCollapsed: false,
		AdminMode:        false,
	}
}

type IPreferenceService interface {
	Get(ctx context.Context, userID string) (Preferences, error)
	SetDarkMode(ctx context.Context, userID string, on bool) error
	SetSidebarCollapsed(ctx context.Context, userID string, collapsed bool) error
	SetAdminMode(ctx context.Context, userID string, on bool) error
}

const (
	prefFieldDarkMode         = "dark_mode"
	prefFieldSidebarCollapsed = "sidebar_collapsed"
	prefFieldAdminMode        = "admin_mode"
)

type PreferenceService struct {
	prefRepo IPreferenceRepo
}

func NewPreferenceService(prefRepo IPreferenceRepo) *PreferenceService {
	return &PreferenceService{prefRepo: prefRepo}
}

// Get 讀取偏好，缺的欄位補預設值
func (s *PreferenceService) Get(ctx context.Context, userID string) (Preferences, error) {
	prefs := DefaultPreferences()
	if s.prefRepo == nil {
		return prefs, nil
	}

	fields, err := s.prefRepo.GetAll(ctx, userID)
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}

	if v, ok := fields[prefFieldDarkMode]; ok {
		prefs.DarkMode = v == "1"
	}
	if v, ok := fields[prefFieldSidebarCollapsed]; ok {
		prefs.SidebarCollapsed = v == "1"
	}
	if v, ok := fields[prefFieldAdminMode]; ok {
		prefs.AdminMode = v == "1"
	}
	return prefs, nil
}

func (s *PreferenceService) SetDarkMode(ctx context.Context, userID string, on bool) error {
	return s.set(ctx, userID, prefFieldDarkMode, on)
}

func (s *PreferenceService) SetSidebarCollapsed(ctx context.Context, userID string, collapsed bool) error {
	return s.set(ctx, userID, prefFieldSidebarCollapsed, collapsed)
}

func (s *PreferenceService) SetAdminMode(ctx context.Context, userID string, on bool) error {
	return s.set(ctx, userID, prefFieldAdminMode, on)
}

func (s *PreferenceService) set(ctx context.Context, userID, field string, on bool) error {
	if s.prefRepo == nil {
		return nil
	}
	value := "0"
	if on {
		value = "1"
	}
	return s.prefRepo.Set(ctx, userID, field, value)
}
