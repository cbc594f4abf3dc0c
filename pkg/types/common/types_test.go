package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse([]int{1, 2}, "req-1")
	assert.True(t, resp.Success)
	assert.Equal(t, []int{1, 2}, resp.Data)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("SRV_002", "certificate not found", "id=c1", "req-2")
	assert.False(t, resp.Success)
	assert.Equal(t, &ErrorDetail{Code: "SRV_002", Message: "certificate not found", Detail: "id=c1"}, resp.Error)
}

func TestOverallHealth(t *testing.T) {
	cases := []struct {
		name string
		in   []HealthStatus
		want HealthStatus
	}{
		{"empty", nil, HealthUp},
		{"all up", []HealthStatus{HealthUp, HealthUp}, HealthUp},
		{"degraded", []HealthStatus{HealthUp, HealthDegraded}, HealthDegraded},
		{"down wins", []HealthStatus{HealthDegraded, HealthDown, HealthUp}, HealthDown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comps := make([]ComponentHealth, len(tc.in))
			for i, s := range tc.in {
				comps[i] = ComponentHealth{Name: "c", Status: s}
			}
			assert.Equal(t, tc.want, OverallHealth(comps))
		})
	}
}

//Personal.AI order the ending
