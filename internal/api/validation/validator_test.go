package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFirstFailedField(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	type form struct {
		Name    string `validate:"required,min=2"`
		Email   string `validate:"required,email"`
		Message string `validate:"required"`
		Token   string `validate:"required"`
	}

	tests := []struct {
		name  string
		input form
		want  string
	}{
		{
			name:  "missing name reported first",
			input: form{Email: "ada@example.com", Message: "hi", Token: "t"},
			want:  "name",
		},
		{
			name:  "bad email",
			input: form{Name: "Ada", Email: "not-an-email", Message: "hi", Token: "t"},
			want:  "email",
		},
		{
			name:  "missing message",
			input: form{Name: "Ada", Email: "ada@example.com", Token: "t"},
			want:  "message",
		},
		{
			name:  "missing token",
			input: form{Name: "Ada", Email: "ada@example.com", Message: "hi"},
			want:  "token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if got := FirstFailedField(err); got != tt.want {
				t.Errorf("FirstFailedField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameRule(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	type form struct {
		Name string `validate:"required,name"`
	}

	valid := []string{"Ada", "Ada Lovelace", "Jean-Luc", "O'Brien", "José", "李明"}
	for _, name := range valid {
		if err := v.Struct(form{Name: name}); err != nil {
			t.Errorf("name %q rejected: %v", name, err)
		}
	}

	invalid := []string{"A", "<script>alert(1)</script>", "ada@example.com", strings.Repeat("a", 101)}
	for _, name := range invalid {
		if err := v.Struct(form{Name: name}); err == nil {
			t.Errorf("name %q accepted", name)
		}
	}
}

func TestFirstFailedFieldNonValidatorError(t *testing.T) {
	if got := FirstFailedField(nil); got != "" {
		t.Errorf("FirstFailedField(nil) = %q, want empty", got)
	}
}
