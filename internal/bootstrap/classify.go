package bootstrap

import (
	"errors"
	"os"
	"strings"
)

// IsConflict reports whether err means the resource already exists. Conflicts
// are a success-path continuation for idempotent setup, never a failure.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "name already taken")
}

// IsPermissionDenied reports whether err is an authorization failure on a
// cloud resource, which gets its own remediation text.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "forbidden")
}

// PermissionRemediation is the operator checklist printed with permission
// failures instead of a bare stack trace.
const PermissionRemediation = `Remediation:
  1. Confirm GOOGLE_APPLICATION_CREDENTIALS points at a service account key for this project.
  2. Confirm the service account has the Storage Admin and Datastore User roles.
  3. IAM changes can take a few minutes to propagate; wait and re-run.`

// ConflictRemediation explains globally-unique name collisions.
const ConflictRemediation = `Remediation:
  Bucket names are globally unique. Set STORAGE_BUCKET_NAME to a name your
  project owns, or reuse the existing bucket if it is yours.`
