package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Phone string `json:"caller_phone" binding:"required,phone"`
	Date  string `json:"date" binding:"required,isodate"`
	Time  string `json:"time" binding:"required,clock"`
}

func TestRegisteredTags(t *testing.T) {
	Register()

	ok := sample{Phone: "+1 (555) 123-4567", Date: "2026-10-19", Time: "3 PM"}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))

	bad := sample{Phone: "call me", Date: "19/10/2026", Time: "25:00"}
	err := binding.Validator.ValidateStruct(&bad)
	require.Error(t, err)

	fields := Describe(err)
	require.Len(t, fields, 3)
	assert.Equal(t, "caller_phone", fields[0].Field)
	assert.Equal(t, "must be a phone number", fields[0].Message)
	assert.Equal(t, "date", fields[1].Field)
	assert.Equal(t, "time", fields[2].Field)
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+15551234567"))
	assert.True(t, IsPhone("0300 1234567"))
	assert.False(t, IsPhone("12345"))
	assert.False(t, IsPhone("+1234567890123456"))
	assert.False(t, IsPhone("phone"))
}

func TestDescribeIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Describe(assert.AnError))
}
