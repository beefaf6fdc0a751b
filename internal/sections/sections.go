// Package sections resolves the `:section` path segment into one of the two
// resource kinds the API serves and knows how each kind is shaped.
package sections

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kickstarter-campaigns/models"
)

type Section int

const (
	Categories Section = iota + 1
	Campaigns
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrNotInteger     = errors.New("value is not an integer")
)

var requiredFields = map[Section][]string{
	Categories: {"category", "category_link"},
	Campaigns:  {"name", "creator", "category_id", "location"},
}

// Parse maps a path segment onto a Section. Anything but "categories" and
// "campaigns" yields ErrUnknownSection.
func Parse(name string) (Section, error) {
	switch name {
	case "categories":
		return Categories, nil
	case "campaigns":
		return Campaigns, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

func (s Section) String() string {
	switch s {
	case Categories:
		return "categories"
	case Campaigns:
		return "campaigns"
	}
	return "section(" + strconv.Itoa(int(s)) + ")"
}

// Singular names one row of the section, e.g. "campaign".
func (s Section) Singular() string {
	switch s {
	case Categories:
		return "category"
	case Campaigns:
		return "campaign"
	}
	return s.String()
}

// RequiredFields lists the body properties a create request must carry, in
// the order they are checked.
func (s Section) RequiredFields() []string {
	return requiredFields[s]
}

// Deletable reports whether rows of the section may be removed through the API.
// Categories are never deletable since campaigns reference them.
func (s Section) Deletable() bool {
	return s == Campaigns
}

// FirstMissing returns the first required field absent from f.
func (s Section) FirstMissing(f Fields) (string, bool) {
	for _, name := range s.RequiredFields() {
		if !f.Has(name) {
			return name, true
		}
	}
	return "", false
}

// NewRecord builds the row to insert from a validated request body.
func (s Section) NewRecord(f Fields) (models.Record, error) {
	switch s {
	case Categories:
		return &models.Category{
			Category:     f.String("category"),
			CategoryLink: f.String("category_link"),
		}, nil
	case Campaigns:
		categoryID, err := f.Int("category_id")
		if err != nil {
			return nil, err
		}
		return &models.Campaign{
			Name:       f.String("name"),
			Creator:    f.String("creator"),
			Location:   f.String("location"),
			CategoryID: categoryID,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, s)
}

// NewRow returns a pointer to an empty row of the section's model.
func (s Section) NewRow() any {
	switch s {
	case Categories:
		return &models.Category{}
	case Campaigns:
		return &models.Campaign{}
	}
	return nil
}

// NewRows returns a pointer to an empty, non-nil slice of the section's model.
func (s Section) NewRows() any {
	switch s {
	case Categories:
		return &[]models.Category{}
	case Campaigns:
		return &[]models.Campaign{}
	}
	return nil
}

// Fields is a decoded JSON request body. Numbers are kept as json.Number.
type Fields map[string]any

// Has reports whether name is present with a non-null, non-empty value.
func (f Fields) Has(name string) bool {
	v, ok := f[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}

func (f Fields) String(name string) string {
	switch v := f[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int reads name as an integer. JSON numbers without a fractional part and
// numeric strings are accepted.
func (f Fields) Int(name string) (int64, error) {
	switch v := f[name].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		if fl, err := v.Float64(); err == nil && fl == math.Trunc(fl) && math.Abs(fl) < math.MaxInt64 {
			return int64(fl), nil
		}
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
			return int64(v), nil
		}
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", name, ErrNotInteger)
}
