package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
)

// ClassService resolves loosely-typed class tokens against the roster and
// answers roster queries.
type ClassService struct {
	studentRepo *repository.StudentRepository
}

// NewClassService creates a new ClassService.
func NewClassService(studentRepo *repository.StudentRepository) *ClassService {
	return &ClassService{studentRepo: studentRepo}
}

// Resolve normalizes a user-supplied class token against the classes present
// in the roster. Always returns a class code; the result may be absent from
// the roster (empty roster is the caller's case to handle).
func (s *ClassService) Resolve(ctx context.Context, token string) (string, error) {
	classes, err := s.studentRepo.Classes(ctx)
	if err != nil {
		return "", err
	}
	return ResolveClass(token, classes), nil
}

// List returns the distinct class codes in the roster, sorted.
func (s *ClassService) List(ctx context.Context) ([]string, error) {
	return s.studentRepo.Classes(ctx)
}

// Roster resolves token and returns that class's students ordered by name.
func (s *ClassService) Roster(ctx context.Context, token string) (string, []model.Student, error) {
	code, err := s.Resolve(ctx, token)
	if err != nil {
		return "", nil, err
	}
	students, err := s.studentRepo.ListByClass(ctx, code)
	if err != nil {
		return "", nil, err
	}
	return code, students, nil
}

// ResolveClass maps a class token onto one of the available class codes.
// Precedence:
//  1. the normalized token matches an available code exactly;
//  2. the token parses as <digits><letter> and that exact code is available;
//  3. the first available code (in the given order) starting with <digits>;
//  4. <digits> plus the given letter, or 'A' when none was given, even if
//     absent from the roster.
//
// The function is deterministic and total: ambiguity is settled by the
// precedence order, never by an error.
func ResolveClass(token string, available []string) string {
	norm := normalizeClassToken(token)
	for _, c := range available {
		if c == norm {
			return c
		}
	}

	digits, letter := splitClassToken(norm)
	if letter != "" {
		want := digits + letter
		for _, c := range available {
			if c == want {
				return c
			}
		}
	}

	for _, c := range available {
		if strings.HasPrefix(c, digits) {
			return c
		}
	}

	if letter == "" {
		letter = "A"
	}
	return digits + letter
}

// normalizeClassToken trims, uppercases, and strips internal whitespace.
func normalizeClassToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(token)) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitClassToken extracts the leading grade digits and the first section
// letter following them. Anything after that letter is ignored.
func splitClassToken(token string) (digits, letter string) {
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	digits = token[:i]
	if i < len(token) {
		r := rune(token[i])
		if unicode.IsLetter(r) {
			letter = string(r)
		}
	}
	return digits, letter
}
