package domain

import (
	"strconv"
	"strings"
	"time"
)

// SearchTask is one (term, location) combination to search for.
type SearchTask struct {
	Term     string `json:"term"`
	Location string `json:"location"`
}

// BuildTasks returns the location-major cartesian product of locations and terms.
// Blank entries are dropped.
func BuildTasks(locations, terms []string) []SearchTask {
	tasks := make([]SearchTask, 0, len(locations)*len(terms))
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		for _, term := range terms {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			tasks = append(tasks, SearchTask{Term: term, Location: loc})
		}
	}
	return tasks
}

// Record field names, shared by extraction rules and the required-field check.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldYears   = "years"
	FieldOwner   = "owner"
	FieldWebsite = "website"
)

// KnownFields lists every field a BusinessRecord can be required to carry.
var KnownFields = []string{FieldName, FieldPhone, FieldAddress, FieldYears, FieldOwner, FieldWebsite}

// IsKnownField reports whether name is one of KnownFields.
func IsKnownField(name string) bool {
	for _, f := range KnownFields {
		if f == name {
			return true
		}
	}
	return false
}

// BusinessRecord is one accepted directory entry.
type BusinessRecord struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	YearsInBusiness int    `json:"years_in_business"`
	Owner           string `json:"owner"`
	Website         string `json:"website"`
	SearchTerm      string `json:"search_term"`
	Location        string `json:"location"`
}

// Field returns the textual value of a named field, or "" for unknown names.
func (r BusinessRecord) Field(name string) string {
	switch name {
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	case FieldYears:
		if r.YearsInBusiness <= 0 {
			return ""
		}
		return strconv.Itoa(r.YearsInBusiness)
	case FieldOwner:
		return r.Owner
	case FieldWebsite:
		return r.Website
	}
	return ""
}

// MissingFields returns the subset of required that is empty on r.
func (r BusinessRecord) MissingFields(required []string) []string {
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(r.Field(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ParseYears reads the leading integer of text, the way a lenient
// "Years in Business: 12 years" label is usually rendered.
func ParseYears(text string) (int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Checkpoint is a complete snapshot of accumulated results and visited state.
type Checkpoint struct {
	Records []BusinessRecord
	Visited []string
	SavedAt time.Time
}

// Progress describes how far a run has come through its task list.
type Progress struct {
	ProcessedTasks     int           `json:"processed_tasks"`
	TotalTasks         int           `json:"total_tasks"`
	TotalRecords       int           `json:"total_records"`
	Elapsed            time.Duration `json:"elapsed"`
	EstimatedRemaining time.Duration `json:"estimated_remaining"`
}

// Percent returns the completed share of tasks, 0-100.
func (p Progress) Percent() int {
	if p.TotalTasks == 0 {
		return 100
	}
	return p.ProcessedTasks * 100 / p.TotalTasks
}

// Run identifies one orchestration run.
type Run struct {
	ID        string       `json:"run_id"`
	Tasks     []SearchTask `json:"tasks"`
	MinYears  int          `json:"min_years"`
	MaxPages  int          `json:"max_pages"`
	Required  []string     `json:"required_fields"`
	StartedAt time.Time    `json:"started_at"`
}

// RunResult holds the outcome of a completed orchestration run.
type RunResult struct {
	Run             Run
	Records         []BusinessRecord
	NewRecords      int
	Visited         int
	FailedLocations []string
	FinalPath       string
	Progress        Progress
	CompletedAt     time.Time
}
