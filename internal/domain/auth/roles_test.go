package auth

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Role
		wantErr bool
	}{
		{name: "supervisor", value: "supervisor", want: RoleSupervisor},
		{name: "teacher", value: "teacher", want: RoleTeacher},
		{name: "mixed case", value: " Supervisor ", want: RoleSupervisor},
		{name: "unknown", value: "admin", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	if !Authorize(RoleSupervisor, RoleSupervisor) {
		t.Fatal("supervisor should be allowed")
	}
	if Authorize(RoleTeacher, RoleSupervisor) {
		t.Fatal("teacher must not pass a supervisor-only gate")
	}
	if !Authorize(RoleTeacher, RoleSupervisor, RoleTeacher) {
		t.Fatal("teacher should pass a gate listing both roles")
	}
	if Authorize(Role("admin"), RoleSupervisor, RoleTeacher) {
		t.Fatal("unknown role must fail closed")
	}
}

func TestScopeFor(t *testing.T) {
	supervisor := ScopeFor(UserContext{UserID: "s1", Role: RoleSupervisor})
	if !supervisor.All {
		t.Fatal("supervisor scope should cover the full collection")
	}
	if !supervisor.Permits("anyone") {
		t.Fatal("supervisor scope should permit any teacher")
	}

	teacher := ScopeFor(UserContext{UserID: "t1", Role: RoleTeacher})
	if teacher.All {
		t.Fatal("teacher scope must not cover the full collection")
	}
	if !teacher.Permits("t1") || teacher.Permits("t2") {
		t.Fatal("teacher scope must permit only the teacher's own records")
	}
}
