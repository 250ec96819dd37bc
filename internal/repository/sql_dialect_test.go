package repository

import (
	"testing"
)

func TestBuildContainsConditionSQLite(t *testing.T) {
	condition, argCount := buildContainsConditionByDialect("sqlite", []string{"title", "author", " "})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\')`
	if condition != want {
		t.Fatalf("sqlite condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildContainsConditionPostgres(t *testing.T) {
	condition, argCount := buildContainsConditionByDialect("postgres", []string{"title"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	want := `(title ILIKE ? ESCAPE '\')`
	if condition != want {
		t.Fatalf("postgres condition mismatch, want %s got %s", want, condition)
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	if got := containsPattern(" 100%_Go "); got != `%100\%\_go%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%x%", 3)
	if len(args) != 3 || args[2] != "%x%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
