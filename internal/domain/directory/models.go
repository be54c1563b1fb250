package directory

import (
	"fmt"
	"strings"
	"time"
)

type Employee struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e Employee) FullName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return fallbackLabel(e.ID)
	}
	return name
}

// NameFor resolves a display name for a user id against a loaded directory,
// degrading to a placeholder when the employee record is missing or not yet
// loaded.
func NameFor(employees []Employee, userID string) string {
	for _, employee := range employees {
		if employee.ID == userID {
			return employee.FullName()
		}
	}
	return fallbackLabel(userID)
}

func fallbackLabel(userID string) string {
	return fmt.Sprintf("Employee #%s", userID)
}
