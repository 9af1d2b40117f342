package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdministrator.Valid())
	assert.True(t, RoleOperator.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
