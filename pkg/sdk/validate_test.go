package sdk

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRegisterInput(t *testing.T) {
	valid := RegisterInput{Name: "Ravi", Email: "ravi@crm.com", Password: "123456", Role: RoleOperator}
	if err := ValidateRegisterInput(valid); err != nil {
		t.Fatalf("expected input to be valid, got %v", err)
	}

	cases := map[string]func(*RegisterInput){
		"name":     func(in *RegisterInput) { in.Name = " " },
		"email":    func(in *RegisterInput) { in.Email = "not-an-email" },
		"password": func(in *RegisterInput) { in.Password = "123" },
		"role":     func(in *RegisterInput) { in.Role = "superuser" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := valid
			mutate(&in)
			err := ValidateRegisterInput(in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != field {
				t.Fatalf("expected field %q, got %q", field, verr.Field)
			}
		})
	}
}

func TestValidateLogoutReason(t *testing.T) {
	if err := ValidateLogoutReason("Admin", ""); err != nil {
		t.Fatalf("admins need no reason, got %v", err)
	}
	if err := ValidateLogoutReason("operator", "too short"); err == nil {
		t.Fatal("expected short reason to be rejected")
	}
	if err := ValidateLogoutReason("OPERATOR", "   "+strings.Repeat("x", 29)+"   "); err == nil {
		t.Fatal("expected surrounding whitespace to be ignored")
	}
	if err := ValidateLogoutReason("operator", strings.Repeat("x", 30)); err != nil {
		t.Fatalf("expected 30 character reason to pass, got %v", err)
	}
}
