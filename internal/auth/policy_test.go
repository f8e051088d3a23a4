package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name   string
		p      Principal
		action Action
		owner  uuid.UUID
		want   bool
	}{
		{"admin can do anything", Principal{ID: self, Role: RoleAdmin}, ActionServiceWrite, uuid.Nil, true},
		{"admin can touch others", Principal{ID: self, Role: RoleAdmin}, ActionUserUpdate, other, true},
		{"client reads own account", Principal{ID: self, Role: RoleClient}, ActionUserRead, self, true},
		{"client cannot read others", Principal{ID: self, Role: RoleClient}, ActionUserRead, other, false},
		{"client cannot list users", Principal{ID: self, Role: RoleClient}, ActionUserList, uuid.Nil, false},
		{"client cannot create offerings", Principal{ID: self, Role: RoleClient}, ActionOfferingCreate, self, false},
		{"client books for themself", Principal{ID: self, Role: RoleClient}, ActionAppointmentCreate, self, true},
		{"provider cannot book", Principal{ID: self, Role: RoleProvider}, ActionAppointmentCreate, self, false},
		{"provider manages own offerings", Principal{ID: self, Role: RoleProvider}, ActionOfferingWrite, self, true},
		{"provider cannot manage others offerings", Principal{ID: self, Role: RoleProvider}, ActionOfferingWrite, other, false},
		{"provider manages own windows", Principal{ID: self, Role: RoleProvider}, ActionAvailabilityWrite, self, true},
		{"provider cannot write services", Principal{ID: self, Role: RoleProvider}, ActionServiceWrite, uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.p, tt.action, tt.owner))
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"client", "provider", "admin"} {
		r, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), r)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}
