// Package domain contains the content entities published on the marketing site,
// independent of the remote store or API layers.
package domain

// Kind names one of the six content collections.
type Kind string

const (
	KindProduct     Kind = "products"
	KindBlogPost    Kind = "blog_posts"
	KindPartner     Kind = "partners"
	KindTestimonial Kind = "testimonials"
	KindIndustry    Kind = "industries"
	KindTeamMember  Kind = "team_members"
)

// Kinds lists every collection in a stable order.
func Kinds() []Kind {
	return []Kind{KindProduct, KindBlogPost, KindPartner, KindTestimonial, KindIndustry, KindTeamMember}
}

func (k Kind) String() string { return string(k) }

// Content is a point-in-time copy of all six collections.
type Content struct {
	Products     []Product     `json:"products"`
	BlogPosts    []BlogPost    `json:"blogPosts"`
	Partners     []Partner     `json:"partners"`
	Testimonials []Testimonial `json:"testimonials"`
	Industries   []Industry    `json:"industries"`
	TeamMembers  []TeamMember  `json:"teamMembers"`
}
