package workflows

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/solobooks/solobooks/internal/configs"
	"github.com/solobooks/solobooks/internal/password"
	"github.com/solobooks/solobooks/internal/vault"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for CheckStatus.
func (s *CheckStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "pass":
		*s = CheckPass
	case "warning":
		*s = CheckWarning
	case "error":
		*s = CheckError
	default:
		return fmt.Errorf("unknown check status %q", name)
	}
	return nil
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks  []CheckResult `json:"checks"`
	Summary DoctorSummary `json:"summary"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Doctor runs health checks on the database storage.
//
// The checks cover:
//   - Application configuration validity
//   - Container parseability and minimum size
//   - File permissions on the container and any working file
//   - Leftover plaintext working file beside a container
//   - Platform credential store availability
func Doctor() DoctorResult {
	var result DoctorResult

	config, err := configs.LoadAppConfig()
	if err != nil {
		result.add(CheckResult{
			Name:       "configuration",
			Status:     CheckError,
			Message:    fmt.Sprintf("config.toml failed to parse: %v", err),
			Suggestion: "Fix or remove the config file; a missing file uses defaults",
		})
		config = &configs.AppConfig{}
	} else {
		result.add(CheckResult{
			Name:    "configuration",
			Status:  CheckPass,
			Message: "configuration loads",
		})
	}

	dataPath := configs.DataFilePath(config)
	containerPath := configs.ContainerPath(dataPath)

	result.add(checkContainer(containerPath))
	result.add(checkWorkingFile(dataPath, containerPath))
	result.add(checkKeychain())

	return result
}

func checkContainer(containerPath string) CheckResult {
	info, err := os.Stat(containerPath)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:    "container",
			Status:  CheckPass,
			Message: "no encrypted container (encryption not in use)",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    "container",
			Status:  CheckError,
			Message: fmt.Sprintf("cannot stat container: %v", err),
		}
	}

	if _, err := vault.ReadContainer(containerPath); err != nil {
		return CheckResult{
			Name:       "container",
			Status:     CheckError,
			Message:    fmt.Sprintf("container does not parse: %v", err),
			Suggestion: "The file may be truncated; restore it from a backup",
		}
	}

	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		return CheckResult{
			Name:       "container",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("container permissions are %o, expected 600", info.Mode().Perm()),
			Suggestion: fmt.Sprintf("Run chmod 600 %s", containerPath),
		}
	}

	return CheckResult{
		Name:    "container",
		Status:  CheckPass,
		Message: fmt.Sprintf("container parses (%d bytes)", info.Size()),
	}
}

func checkWorkingFile(dataPath, containerPath string) CheckResult {
	_, dataErr := os.Stat(dataPath)
	_, containerErr := os.Stat(containerPath)

	// A plaintext file beside a container means a previous encrypted close
	// did not finish. The close path preserves the working file on failure
	// for exactly this situation.
	if dataErr == nil && containerErr == nil {
		return CheckResult{
			Name:       "working file",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("plaintext working file %s exists beside its container", dataPath),
			Suggestion: "A previous close did not finish; the next open/close cycle will reconcile it, or inspect both files manually",
		}
	}

	return CheckResult{
		Name:    "working file",
		Status:  CheckPass,
		Message: "no orphaned working file",
	}
}

func checkKeychain() CheckResult {
	if _, err := password.OpenKeychain(); err != nil {
		return CheckResult{
			Name:       "credential store",
			Status:     CheckWarning,
			Message:    "platform credential store unavailable",
			Suggestion: "Passwords fall back to " + password.EnvVar + " or the interactive prompt",
		}
	}
	return CheckResult{
		Name:    "credential store",
		Status:  CheckPass,
		Message: "platform credential store available",
	}
}

func (r *DoctorResult) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case CheckPass:
		r.Summary.Passed++
	case CheckWarning:
		r.Summary.Warnings++
	case CheckError:
		r.Summary.Errors++
	}
}
