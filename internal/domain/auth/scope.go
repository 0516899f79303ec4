package auth

type UserContext struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// Scope bounds what a data fetch may return. Supervisors see the full
// collection; teachers only rows keyed to their own identity. Stores apply
// the scope inside SQL so the narrowing does not rely on handler code alone.
type Scope struct {
	All       bool
	TeacherID string
}

func ScopeFor(user UserContext) Scope {
	if user.Role == RoleSupervisor {
		return Scope{All: true}
	}
	return Scope{TeacherID: user.UserID}
}

// Permits reports whether a record owned by teacherID is visible under the scope.
func (s Scope) Permits(teacherID string) bool {
	return s.All || s.TeacherID == teacherID
}
