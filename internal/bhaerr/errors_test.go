package bhaerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewNotFound("trace file missing")
	assert.Equal(t, "[NotFound] trace file missing", err.Error())

	err.WithContext("path=build/a.json")
	assert.Equal(t, "[NotFound] trace file missing (context: path=build/a.json)", err.Error())

	err.WithContext("attempt=2")
	assert.Equal(t, "[NotFound] trace file missing (context: path=build/a.json; attempt=2)", err.Error())
}

func TestErrorCodeAccessor(t *testing.T) {
	err := NewAnalysisError("cycle where a DAG is required")
	assert.Equal(t, AnalysisError, err.Code())
	assert.Equal(t, "cycle where a DAG is required", err.Message())
}

func TestCodeString(t *testing.T) {
	cases := map[Code]string{
		InvalidArgument: "InvalidArgument",
		NotFound:        "NotFound",
		ParseError:      "ParseError",
		IoError:         "IoError",
		ConfigError:     "ConfigError",
		AnalysisError:   "AnalysisError",
		PluginError:     "PluginError",
		GitError:        "GitError",
		InternalError:   "InternalError",
	}
	for code, want := range cases {
		assert.Equal(t, want, code.String())
	}
}
