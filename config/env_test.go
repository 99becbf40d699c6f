package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdminEmails(t *testing.T) {
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, ParseAdminEmails("a@example.com,b@example.com"))
	assert.Equal(t, []string{"a@example.com"}, ParseAdminEmails("  a@example.com , "))
	assert.Empty(t, ParseAdminEmails(""))
	assert.Empty(t, ParseAdminEmails(" , ,"))
}
