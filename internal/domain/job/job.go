package job

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
	StatusDraft   Status = "draft"
	StatusExpired Status = "expired"
)

var (
	ValidEmploymentTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Freelance", "Temporary"}
	ValidWorkModes       = []string{"Remote", "On-site", "Hybrid", "Work From Office"}
	ValidStatuses        = []string{string(StatusActive), string(StatusClosed), string(StatusDraft), string(StatusExpired)}
)

var ErrNotFound = errors.New("job not found")

// Range is a min/max pair used for both salary and experience.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Job struct {
	ID                       string    `json:"id"`
	JobTitle                 string    `json:"jobTitle"`
	EmploymentType           []string  `json:"employmentType"`
	WorkMode                 []string  `json:"workMode"`
	Salary                   Range     `json:"salary"`
	Description              string    `json:"description"`
	CompanyName              string    `json:"companyName"`
	JobLocations             []string  `json:"jobLocations"`
	CompanyLogo              string    `json:"companyLogo,omitempty"`
	CompanyUrl               string    `json:"companyUrl,omitempty"`
	RolesAndResponsibilities string    `json:"rolesAndResponsibilities"`
	Experience               Range     `json:"experience"`
	Status                   Status    `json:"status"`
	PostedBy                 string    `json:"postedBy"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// WithEmployer augments a job with the posting employer's email, resolved at
// query time rather than embedded in the record.
type WithEmployer struct {
	Job
	EmployerEmail string `json:"employerEmail,omitempty"`
}

// StringList accepts either a JSON array of strings or a single string,
// matching clients that send "Full-time" where ["Full-time"] is meant.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = []string{one}
	return nil
}

// Scalar keeps the raw text of a JSON number or string so the validation
// pipeline can run the numeric coercion itself and report it as its own step.
type Scalar string

func (v *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*v = Scalar(str)
		return nil
	}
	*v = Scalar(strings.TrimSpace(string(data)))
	return nil
}

func (v Scalar) Float() (float64, error) {
	return strconv.ParseFloat(string(v), 64)
}

type ExperienceInput struct {
	Min Scalar `json:"min"`
	Max Scalar `json:"max"`
}

type CreateRequest struct {
	JobTitle                 string           `json:"jobTitle"`
	EmploymentType           StringList       `json:"employmentType"`
	WorkMode                 StringList       `json:"workMode"`
	MinPrice                 Scalar           `json:"minPrice"`
	MaxPrice                 Scalar           `json:"maxPrice"`
	Description              string           `json:"description"`
	CompanyName              string           `json:"companyName"`
	JobLocations             StringList       `json:"jobLocations"`
	CompanyLogo              string           `json:"companyLogo"`
	CompanyUrl               string           `json:"companyUrl"`
	RolesAndResponsibilities string           `json:"rolesAndResponsibilities"`
	Experience               *ExperienceInput `json:"experience"`
	Status                   string           `json:"status"`
}

// ValidationError carries the rejection message plus any extra payload the
// response should include (missing field names, accepted enum values).
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(message string, details map[string]any) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func contains(valid []string, v string) bool {
	for _, s := range valid {
		if s == v {
			return true
		}
	}
	return false
}

func allIn(valid []string, values []string) bool {
	for _, v := range values {
		if !contains(valid, v) {
			return false
		}
	}
	return true
}

// New runs the full creation pipeline against req and builds the job record.
// Checks run in a fixed order and the first failure wins:
// required fields, numeric coercion, salary range, experience range,
// employment type enum, work mode enum, optional status enum.
func New(req CreateRequest, postedBy string) (Job, *ValidationError) {
	var missing []string

	checkPresent := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	checkPresent("jobTitle", req.JobTitle)
	if len(req.EmploymentType) == 0 {
		missing = append(missing, "employmentType")
	}
	if len(req.WorkMode) == 0 {
		missing = append(missing, "workMode")
	}
	checkPresent("minPrice", string(req.MinPrice))
	checkPresent("maxPrice", string(req.MaxPrice))
	checkPresent("description", req.Description)
	checkPresent("companyName", req.CompanyName)
	if len(req.JobLocations) == 0 {
		missing = append(missing, "jobLocations")
	}
	checkPresent("rolesAndResponsibilities", req.RolesAndResponsibilities)
	if req.Experience == nil {
		missing = append(missing, "experience")
	}

	if len(missing) > 0 {
		return Job{}, invalid(
			"Missing required fields: "+strings.Join(missing, ", "),
			map[string]any{"missingFields": missing},
		)
	}

	salaryMin, errMin := req.MinPrice.Float()
	salaryMax, errMax := req.MaxPrice.Float()
	expMin, errExpMin := req.Experience.Min.Float()
	expMax, errExpMax := req.Experience.Max.Float()

	if errMin != nil || errMax != nil || errExpMin != nil || errExpMax != nil ||
		salaryMin < 0 || salaryMax < 0 || expMin < 0 || expMax < 0 {
		return Job{}, invalid("Invalid salary or experience values", nil)
	}

	if salaryMin > salaryMax {
		return Job{}, invalid("Minimum salary cannot be greater than maximum salary", nil)
	}

	if expMin > expMax {
		return Job{}, invalid("Minimum experience cannot be greater than maximum experience", nil)
	}

	if !allIn(ValidEmploymentTypes, req.EmploymentType) {
		return Job{}, invalid("Invalid employment type(s)", map[string]any{"validTypes": ValidEmploymentTypes})
	}

	if !allIn(ValidWorkModes, req.WorkMode) {
		return Job{}, invalid("Invalid work mode(s)", map[string]any{"validModes": ValidWorkModes})
	}

	status := StatusActive
	if req.Status != "" {
		if !contains(ValidStatuses, req.Status) {
			return Job{}, invalid("Invalid status value", map[string]any{"validStatus": ValidStatuses})
		}
		status = Status(req.Status)
	}

	now := time.Now().UTC()

	return Job{
		ID:                       uuid.NewString(),
		JobTitle:                 strings.TrimSpace(req.JobTitle),
		EmploymentType:           req.EmploymentType,
		WorkMode:                 req.WorkMode,
		Salary:                   Range{Min: salaryMin, Max: salaryMax},
		Description:              strings.TrimSpace(req.Description),
		CompanyName:              strings.TrimSpace(req.CompanyName),
		JobLocations:             req.JobLocations,
		CompanyLogo:              strings.TrimSpace(req.CompanyLogo),
		CompanyUrl:               strings.TrimSpace(req.CompanyUrl),
		RolesAndResponsibilities: strings.TrimSpace(req.RolesAndResponsibilities),
		Experience:               Range{Min: expMin, Max: expMax},
		Status:                   status,
		PostedBy:                 postedBy,
		CreatedAt:                now,
		UpdatedAt:                now,
	}, nil
}

// UpdateRequest is a partial payload: only non-nil fields overwrite.
type UpdateRequest struct {
	JobTitle                 *string     `json:"jobTitle"`
	EmploymentType           *StringList `json:"employmentType"`
	WorkMode                 *StringList `json:"workMode"`
	Salary                   *Range      `json:"salary"`
	Description              *string     `json:"description"`
	CompanyName              *string     `json:"companyName"`
	JobLocations             *StringList `json:"jobLocations"`
	CompanyLogo              *string     `json:"companyLogo"`
	CompanyUrl               *string     `json:"companyUrl"`
	RolesAndResponsibilities *string     `json:"rolesAndResponsibilities"`
	Experience               *Range      `json:"experience"`
	Status                   *Status     `json:"status"`
}

// Apply merges the present fields of req onto j and stamps UpdatedAt.
func (req UpdateRequest) Apply(j *Job) {
	if req.JobTitle != nil {
		j.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.EmploymentType != nil {
		j.EmploymentType = *req.EmploymentType
	}
	if req.WorkMode != nil {
		j.WorkMode = *req.WorkMode
	}
	if req.Salary != nil {
		j.Salary = *req.Salary
	}
	if req.Description != nil {
		j.Description = strings.TrimSpace(*req.Description)
	}
	if req.CompanyName != nil {
		j.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.JobLocations != nil {
		j.JobLocations = *req.JobLocations
	}
	if req.CompanyLogo != nil {
		j.CompanyLogo = strings.TrimSpace(*req.CompanyLogo)
	}
	if req.CompanyUrl != nil {
		j.CompanyUrl = strings.TrimSpace(*req.CompanyUrl)
	}
	if req.RolesAndResponsibilities != nil {
		j.RolesAndResponsibilities = strings.TrimSpace(*req.RolesAndResponsibilities)
	}
	if req.Experience != nil {
		j.Experience = *req.Experience
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	j.UpdatedAt = time.Now().UTC()
}

// Validate re-checks the cross-field invariants on a full record. Updates run
// this after merging so a partial payload cannot leave the record
// inconsistent.
func (j Job) Validate() *ValidationError {
	if strings.TrimSpace(j.JobTitle) == "" {
		return invalid("Job title is required", nil)
	}
	if j.Salary.Min < 0 || j.Salary.Max < 0 || j.Experience.Min < 0 || j.Experience.Max < 0 {
		return invalid("Invalid salary or experience values", nil)
	}
	if j.Salary.Min > j.Salary.Max {
		return invalid("Minimum salary cannot be greater than maximum salary", nil)
	}
	if j.Experience.Min > j.Experience.Max {
		return invalid("Minimum experience cannot be greater than maximum experience", nil)
	}
	if len(j.EmploymentType) == 0 || !allIn(ValidEmploymentTypes, j.EmploymentType) {
		return invalid("Invalid employment type(s)", map[string]any{"validTypes": ValidEmploymentTypes})
	}
	if len(j.WorkMode) == 0 || !allIn(ValidWorkModes, j.WorkMode) {
		return invalid("Invalid work mode(s)", map[string]any{"validModes": ValidWorkModes})
	}
	if len(j.JobLocations) == 0 {
		return invalid("At least one job location is required", nil)
	}
	if !contains(ValidStatuses, string(j.Status)) {
		return invalid("Invalid status value", map[string]any{"validStatus": ValidStatuses})
	}
	return nil
}

// SearchFilter narrows the public job search; nil fields are skipped.
type SearchFilter struct {
	Keyword  *string
	Location *string
}
