package domain

// Testimonial is a client quote. Industry is a free-text label, not a
// reference to an Industry entity.
type Testimonial struct {
	ID       string `json:"id"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
}

func (t Testimonial) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	return nil
}
