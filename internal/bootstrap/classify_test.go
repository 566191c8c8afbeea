package bootstrap_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/bootstrap"

	"github.com/stretchr/testify/assert"
)

func TestIsConflict(t *testing.T) {
	assert.True(t, bootstrap.IsConflict(errors.New(`bucket "x" already exists`)))
	assert.True(t, bootstrap.IsConflict(errors.New(`ERROR: duplicate key value violates unique constraint`)))
	assert.True(t, bootstrap.IsConflict(errors.New("name already taken")))
	assert.False(t, bootstrap.IsConflict(errors.New("connection refused")))
	assert.False(t, bootstrap.IsConflict(nil))
}

func TestIsPermissionDenied(t *testing.T) {
	assert.True(t, bootstrap.IsPermissionDenied(errors.New("googleapi: Error 403: Permission denied")))
	assert.True(t, bootstrap.IsPermissionDenied(fmt.Errorf("wrapped: %w", os.ErrPermission)))
	assert.True(t, bootstrap.IsPermissionDenied(errors.New("Access Denied")))
	assert.False(t, bootstrap.IsPermissionDenied(errors.New("not found")))
	assert.False(t, bootstrap.IsPermissionDenied(nil))
}

func TestRemediationFor(t *testing.T) {
	assert.Contains(t, bootstrap.RemediationFor(errors.New("permission denied")), "IAM")
	assert.Contains(t, bootstrap.RemediationFor(errors.New("name already taken")), "globally unique")
	assert.Empty(t, bootstrap.RemediationFor(errors.New("something else entirely")))
}
