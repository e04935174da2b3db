//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewContext_Validate(t *testing.T) {
	tests := []struct {
		name      string
		ctx       InterviewContext
		wantErr   bool
		wantField string
		errMsg    string
	}{
		{
			name: "valid context",
			ctx: InterviewContext{
				CompanyName:    "Google",
				JobRole:        "Software Engineer",
				JobDescription: "Responsible for developing scalable software solutions.",
			},
		},
		{
			name:      "missing company",
			ctx:       InterviewContext{JobRole: "SWE", JobDescription: "desc"},
			wantErr:   true,
			wantField: "company_name",
			errMsg:    "is required",
		},
		{
			name:      "blank role",
			ctx:       InterviewContext{CompanyName: "Acme", JobRole: "   ", JobDescription: "desc"},
			wantErr:   true,
			wantField: "job_role",
			errMsg:    "must not be blank",
		},
		{
			name:      "missing description",
			ctx:       InterviewContext{CompanyName: "Acme", JobRole: "SWE"},
			wantErr:   true,
			wantField: "job_description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestInterviewContext_Trimmed(t *testing.T) {
	ctx := InterviewContext{CompanyName: " Google ", JobRole: "\tSWE\n", JobDescription: " d "}
	assert.Equal(t, InterviewContext{CompanyName: "Google", JobRole: "SWE", JobDescription: "d"}, ctx.Trimmed())
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "validation error in job_role: is required", (&ValidationError{Field: "job_role", Message: "is required"}).Error())
	assert.Equal(t, "validation error: bad", (&ValidationError{Message: "bad"}).Error())
}

func TestCompanyRequest_Validate(t *testing.T) {
	assert.NoError(t, CompanyRequest{CompanyName: "Google"}.Validate())

	err := CompanyRequest{CompanyName: " \t"}.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "company_name", ve.Field)
	assert.Equal(t, "must not be blank", ve.Message)
}
