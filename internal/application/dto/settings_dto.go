package dto

// SaveSettingsRequest body para PUT /api/settings (solo ADMIN).
type SaveSettingsRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LogoPath string `json:"logo_path,omitempty"`
}

// SettingsResponse datos del negocio.
type SettingsResponse struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LogoPath string `json:"logo_path,omitempty"`
}
