// File path: internal/idea/legal.go
package idea

// Permission grades what a founder may do under a given visa status.
type Permission string

const (
	PermissionYes         Permission = "yes"
	PermissionRestricted  Permission = "yes-restrictions"
	PermissionNo          Permission = "no"
	PermissionConditional Permission = "conditions"
)

// Eligibility summarizes ownership and work rights for one visa status.
type Eligibility struct {
	Status            VisaStatus      `json:"status"`
	CanOwn            Permission      `json:"can_own"`
	CanWork           Permission      `json:"can_work"`
	AllowedRoles      []CofounderRole `json:"allowed_roles,omitempty"`
	Explanation       string          `json:"explanation"`
	RecommendAttorney bool            `json:"recommend_attorney"`
}

// LegalPath is one named route to legally building a company in the US.
type LegalPath struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Timeline    string `json:"timeline,omitempty"`
	Cost        string `json:"cost,omitempty"`
}

// Guidance bundles the do/don't lists and ordered next steps for one visa
// status.
type Guidance struct {
	Title      string   `json:"title"`
	Allowed    []string `json:"allowed,omitempty"`
	Restricted []string `json:"restricted,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	NextSteps  []string `json:"next_steps"`
	Actions    []string `json:"actions,omitempty"`
}
