package reviewer

import (
	"strings"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
)

// Roles
const (
	// Admin
	RoleAdmin = "admin:"

	// Reviewers
	RoleChairman     = "chairman:"
	RoleAAQA         = "aaqa:"
	RoleVerification = "verification:"
	RoleExpert       = "expert:"

	// Department
	RoleDepartment = "department:"
)

var (
	ReviewerRoles = []string{RoleAdmin, RoleChairman, RoleAAQA, RoleVerification, RoleExpert}
	AllRoles      = append(append([]string{}, ReviewerRoles...), RoleDepartment)

	rolePriorities = map[string]int{
		RoleAdmin: 30,

		// Reviewers: 20 - 11
		RoleChairman:     20,
		RoleAAQA:         15,
		RoleVerification: 14,
		RoleExpert:       11,

		RoleDepartment: 1,
	}

	Roles = []Role{
		{Name: "Department", Value: RoleDepartment},
		{Name: "Expert", Value: RoleExpert},
		{Name: "Verification Committee", Value: RoleVerification},
		{Name: "AAQA", Value: RoleAAQA},
		{Name: "Chairman", Value: RoleChairman},
		{Name: "Admin", Value: RoleAdmin},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

// IsRole reports whether role is one of AllRoles.
func IsRole(role string) bool {
	_, ok := rolePriorities[role]
	return ok
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Actor is the authenticated caller of a request.
// It is built per request from the caller's token and passed explicitly to the operations that need it.
type Actor struct {
	Email        string   `json:"email"`
	Name         string   `json:"name,omitempty"`
	Roles        []string `json:"roles"`
	DepartmentID int      `json:"department_id,omitempty"` // set for department users only
}

func NewActor(email, name string, roles []string, departmentID int) Actor {
	return Actor{
		Email:        core.CleanString(email, true /* lower */),
		Name:         core.CleanString(name),
		Roles:        roles,
		DepartmentID: departmentID,
	}
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) roleStartsWith(prefix string) bool {
	for _, role := range a.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.roleStartsWith(RoleAdmin)
}

func (a Actor) IsExpert() bool {
	return a.roleStartsWith(RoleExpert)
}

// IsReviewer reports whether the actor may view scores and rankings of every department.
func (a Actor) IsReviewer() bool {
	for _, role := range ReviewerRoles {
		if a.roleStartsWith(role) {
			return true
		}
	}
	return false
}

// CanViewDepartment reports whether the actor may see the scores of the given department.
func (a Actor) CanViewDepartment(departmentID int) bool {
	if a.IsReviewer() {
		return true
	}
	return a.roleStartsWith(RoleDepartment) && a.DepartmentID != 0 && a.DepartmentID == departmentID
}
