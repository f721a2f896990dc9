// Package photos serves the hostel photo catalog.
//
// Photos live in a directory tree of category/subcategory folders. The
// catalog answers "show me the rooms" style queries with ordered lists of
// file paths; rendering is the presentation layer's job.
package photos

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// photoQueryPattern marks a question as photo-shaped.
var photoQueryPattern = regexp.MustCompile(`photo|picture|image|pic|show me|look|view`)

// hostelPattern catches generic "show me the hostel" requests that name no
// specific category.
var hostelPattern = regexp.MustCompile(`hostel|building|campus`)

// Catalog maps photo categories to their subdirectories under a root.
type Catalog struct {
	dir        string
	categories map[string][]string
}

// NewCatalog creates a catalog rooted at dir with the fixed category layout.
func NewCatalog(dir string) *Catalog {
	return &Catalog{
		dir: dir,
		categories: map[string][]string{
			"rooms":      {"rooms"},
			"mess":       {"dining"},
			"facilities": {"sports"},
			"exterior":   {"building", "entrance", "garden"},
		},
	}
}

// Setup ensures the photo directory tree exists. Failure is not fatal;
// photo queries simply come back empty.
func (c *Catalog) Setup() error {
	for category, subcategories := range c.categories {
		for _, sub := range subcategories {
			if err := os.MkdirAll(filepath.Join(c.dir, category, sub), 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// Paths returns photo file paths for a category, optionally narrowed to one
// subcategory. Unknown categories return nil.
func (c *Catalog) Paths(category, subcategory string) []string {
	subs, ok := c.categories[category]
	if !ok {
		return nil
	}
	if subcategory != "" {
		return globPhotos(filepath.Join(c.dir, category, subcategory))
	}
	var paths []string
	for _, sub := range subs {
		paths = append(paths, globPhotos(filepath.Join(c.dir, category, sub))...)
	}
	return paths
}

// allPaths returns every photo in the catalog.
func (c *Catalog) allPaths() []string {
	var paths []string
	for category := range c.categories {
		paths = append(paths, c.Paths(category, "")...)
	}
	sort.Strings(paths)
	return paths
}

// IsPhotoQuery reports whether a question is asking for photos at all.
func IsPhotoQuery(question string) bool {
	return photoQueryPattern.MatchString(strings.ToLower(question))
}

// HandleQuery answers a photo-shaped question with relevant photo paths.
//
// Returns nil when the question is not photo-related or nothing matches, so
// the dispatcher can fall through to the answer backend. Category words in
// the question narrow the result; a generic "hostel" request returns
// everything.
func (c *Catalog) HandleQuery(question string) []string {
	lower := strings.ToLower(question)
	if !photoQueryPattern.MatchString(lower) {
		return nil
	}

	var paths []string
	for category, subcategories := range c.categories {
		if !strings.Contains(lower, category) {
			continue
		}
		for _, sub := range subcategories {
			if strings.Contains(lower, strings.ReplaceAll(sub, "_", " ")) {
				paths = append(paths, c.Paths(category, sub)...)
			}
		}
		if len(paths) == 0 {
			paths = append(paths, c.Paths(category, "")...)
		}
	}

	if len(paths) == 0 && hostelPattern.MatchString(lower) {
		paths = c.allPaths()
	}

	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	return paths
}

// globPhotos lists jpg and png files in one directory.
func globPhotos(dir string) []string {
	var paths []string
	for _, pattern := range []string{"*.jpg", "*.png"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			log.Println("⚠️  Photo glob failed:", err)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}
