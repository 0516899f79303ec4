package teacher

import "time"

// Teacher shares its id with the login row in users; deleting the login
// cascades to the profile.
type Teacher struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	JoinDate   time.Time `json:"joinDate"`
	BirthDate  time.Time `json:"birthDate"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
}
