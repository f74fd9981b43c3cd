package dto

type PreferencesDTO struct {
	DarkMode         bool `json:"dark_mode"`
	SidebarCollapsed bool `json:"sidebar_collapsed"`
	AdminMode        bool `json:"admin_mode"`
}

type SetPreferenceDTO struct {
	Value bool `json:"value"`
}
