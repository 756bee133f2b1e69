package database

import (
	"strings"
	"testing"

	"nautikos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateNumberSequenceSQL(t *testing.T) {
	stmts := candidateNumberSequenceSQL()
	require.Len(t, stmts, 3)

	assert.Contains(t, stmts[0], "CREATE SEQUENCE IF NOT EXISTS "+models.CandidateNumberSequence)
	assert.Contains(t, stmts[0], "START WITH 1000")
	assert.Contains(t, stmts[1], "setval('"+models.CandidateNumberSequence+"', m)")
	assert.Contains(t, stmts[2], "SET DEFAULT nextval('"+models.CandidateNumberSequence+"')")

	for _, stmt := range stmts {
		assert.False(t, strings.Contains(stmt, "%!"), "bad format verb in %q", stmt)
	}
}
