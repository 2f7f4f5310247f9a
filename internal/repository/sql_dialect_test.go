package repository

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "title", " ", "destination")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "(title LIKE ? OR destination LIKE ?)" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", "code")
	if condition != "(code ILIKE ?)" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}

	condition, argCount = buildLikeConditionByDialect("sqlite")
	if condition != "" || argCount != 0 {
		t.Fatalf("empty columns should yield empty condition, got %q %d", condition, argCount)
	}
}

func TestBuildLikeConditionNilDB(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, "slug")
	if condition != "(slug LIKE ?)" || argCount != 1 {
		t.Fatalf("nil db should default to sqlite, got %q %d", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: gorm.ErrDuplicatedKey, want: true},
		{err: fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), want: true},
		{err: errors.New("constraint failed: UNIQUE constraint failed: consultation_codes.code (2067)"), want: true},
		{err: errors.New(`ERROR: duplicate key value violates unique constraint "idx_consultation_codes_code" (SQLSTATE 23505)`), want: true},
		{err: errors.New("database is locked"), want: false},
	}
	for idx, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("case %d want %v got %v", idx, tc.want, got)
		}
	}
}
