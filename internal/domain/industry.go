package domain

// Industry is a sector label shown on the landing page. ID is synthetic; the
// remote row is addressed by it rather than by Name so renames never collide.
type Industry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i Industry) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if i.Name == "" {
		return ErrMissingName
	}
	return nil
}

// IndustryNames projects industries to their labels, keeping order.
func IndustryNames(industries []Industry) []string {
	names := make([]string, len(industries))
	for i, ind := range industries {
		names[i] = ind.Name
	}
	return names
}
