package parser

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"unibuild/pkg/job"
)

// DefaultContainerWorkspace is the in-container workspace mount point used when the
// job file leaves it unset.
const DefaultContainerWorkspace = "/unibuild/workspace"

// DefaultIsolationMode is the Windows container isolation mode used when the job
// file leaves it unset. "default" lets the daemon pick its configured mode.
const DefaultIsolationMode = "default"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Parse reads and validates a job YAML file, returning the parsed Job struct or an error.
func Parse(filePath string) (*job.Job, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("job file not found: %s", filePath)
	}

	// Configure Viper
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("yaml")

	v.SetDefault("spec.parameters.containerWorkspace", DefaultContainerWorkspace)
	v.SetDefault("spec.parameters.isolationMode", DefaultIsolationMode)

	// Read the file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("job file not found: %s", filePath)
		}
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	// Unmarshal into Job struct
	var j job.Job
	if err := v.Unmarshal(&j); err != nil {
		return nil, fmt.Errorf("failed to parse job file - malformed YAML: %w", err)
	}

	// The runner temp directory defaults to the host temp directory; the run id is
	// left empty for the caller to fill.
	if j.Spec.Parameters.Runner.TempDirectory == "" {
		j.Spec.Parameters.Runner.TempDirectory = os.TempDir()
	}

	// Validate the structure
	if err := validate.Struct(&j); err != nil {
		return nil, formatValidationError(err)
	}

	return &j, nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, formatFieldError(e))
		}

		if len(errorMessages) == 1 {
			return fmt.Errorf("validation error: %s", errorMessages[0])
		}

		result := "validation errors:\n"
		for _, msg := range errorMessages {
			result += fmt.Sprintf("  - %s\n", msg)
		}
		return fmt.Errorf("%s", result)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatFieldError formats a single validation error into a user-friendly message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "eq":
		return fmt.Sprintf("field '%s' must be '%s'", field, e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, tag)
	}
}
