package domain

type TeamMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	IsFounder bool   `json:"isFounder"`
	ImageURL  string `json:"image_url,omitempty"`
}

func (m TeamMember) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.Name == "" {
		return ErrMissingName
	}
	return nil
}
