package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultBlogCategory is used when a post is saved without a category.
	DefaultBlogCategory = "GENERAL"
	DefaultReadTime     = "5 MIN LECTURA"
)

var shortMonths = [...]string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEPT", "OCT", "NOV", "DIC"}

// PostDate formats t as post dates are displayed, e.g. "19 OCT 2026".
func PostDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// BlogPost is an article teaser; Slug addresses the narrative page.
type BlogPost struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

func (b BlogPost) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if b.Title == "" {
		return ErrMissingTitle
	}
	return nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lower-cases the title and replaces whitespace runs with a dash.
// Other characters are kept as typed.
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
}

// NormalizeBlogPost applies the call-site defaults for a post about to be
// saved. It is never applied to rows loaded from the remote store.
func NormalizeBlogPost(b BlogPost) BlogPost {
	if b.Category == "" {
		b.Category = DefaultBlogCategory
	}
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	if b.Date == "" {
		b.Date = PostDate(time.Now())
	}
	if b.ReadTime == "" {
		b.ReadTime = DefaultReadTime
	}
	return b
}
