// Package model defines the records persisted in the portal's CSV tables.
// Field names and order in the csv tags are the on-disk schema and must not
// change, because existing data files depend on them.
package model

type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleTechLead    Role = "Tech Lead"
	RoleAIDeveloper Role = "AI Developer"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTechLead, RoleAIDeveloper:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen         Status = "Open"
	StatusInProgress   Status = "In Progress"
	StatusMergeRequest Status = "Merge Request Submitted"
	StatusCompleted    Status = "Completed"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type User struct {
	Name        string `json:"name" csv:"name" form:"name"`
	Email       string `json:"email" csv:"email" form:"email"`
	Password    string `json:"-" csv:"password" form:"password"`
	Role        Role   `json:"role" csv:"role" form:"role"`
	College     string `json:"college" csv:"college" form:"college"`
	OfferLetter string `json:"offerLetter" csv:"offer_letter"`
}

// AssignedLabel is the human-readable string recorded in an issue's
// assigned_to column when this user claims it.
func (u *User) AssignedLabel() string {
	return string(u.Role) + " - " + u.Name
}

type Issue struct {
	Id          int        `json:"id" csv:"id"`
	Title       string     `json:"title" csv:"title" form:"title"`
	Description string     `json:"description" csv:"description" form:"description"`
	Difficulty  Difficulty `json:"difficulty" csv:"difficulty" form:"difficulty"`
	Status      Status     `json:"status" csv:"status"`
	AssignedTo  string     `json:"assignedTo" csv:"assigned_to"`
	Submitter   string     `json:"submitter" csv:"submitter"`
}

type HelpRequest struct {
	Email     string `json:"email" csv:"email"`
	Developer string `json:"developer" csv:"developer"`
	Query     string `json:"query" csv:"query"`
	Timestamp string `json:"timestamp" csv:"timestamp"`
}
