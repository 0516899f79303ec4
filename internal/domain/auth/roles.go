package auth

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleSupervisor Role = "supervisor"
	RoleTeacher    Role = "teacher"
)

// ParseRole fails closed: anything outside the two known roles is rejected,
// even values that were accepted as free-form strings by earlier data.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleTeacher:
		return RoleTeacher, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

func (r Role) Valid() bool {
	return r == RoleSupervisor || r == RoleTeacher
}

func Authorize(role Role, required ...Role) bool {
	if !role.Valid() {
		return false
	}
	for _, candidate := range required {
		if role == candidate {
			return true
		}
	}
	return false
}
