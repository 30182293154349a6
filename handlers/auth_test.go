package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateUser(t *testing.T) {
	assert.True(t, isDuplicateUser(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateUser(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)))

	assert.False(t, isDuplicateUser(nil))
	assert.False(t, isDuplicateUser(errors.New("connection refused")))
	assert.False(t, isDuplicateUser(gorm.ErrRecordNotFound))
}
