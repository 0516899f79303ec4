package main

import "testing"

func validRecord() teacherRecord {
	return teacherRecord{
		Name:      "Huda",
		Email:     "huda@example.com",
		Subject:   "Math",
		JoinDate:  "2020-09-01",
		BirthDate: "1988-02-14",
	}
}

func TestToProfile(t *testing.T) {
	profile, err := toProfile(validRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.JoinDate.Year() != 2020 || profile.BirthDate.Year() != 1988 {
		t.Fatalf("dates not parsed: %+v", profile)
	}
}

func TestToProfileRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*teacherRecord)
	}{
		{name: "missing name", mutate: func(r *teacherRecord) { r.Name = "" }},
		{name: "missing email", mutate: func(r *teacherRecord) { r.Email = "" }},
		{name: "missing joinDate", mutate: func(r *teacherRecord) { r.JoinDate = "" }},
		{name: "missing birthDate", mutate: func(r *teacherRecord) { r.BirthDate = "" }},
		{name: "malformed joinDate", mutate: func(r *teacherRecord) { r.JoinDate = "01/09/2020" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			tc.mutate(&record)
			if _, err := toProfile(record); err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}
