package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-service/portal/backend/internal/testhelpers"
)

func TestCanViewSensitiveField(t *testing.T) {
	dept := func(id int64) *int64 { return &id }
	eid := func(id int64) *int64 { return &id }

	tests := []struct {
		name  string
		facts PhoneAccessFacts
		want  bool
	}{
		{
			name:  "same department",
			facts: PhoneAccessFacts{ViewerEID: 1, ViewerDepartmentID: dept(10), TargetFound: true, TargetDepartmentID: dept(10)},
			want:  true,
		},
		{
			name:  "different department",
			facts: PhoneAccessFacts{ViewerEID: 1, ViewerDepartmentID: dept(10), TargetFound: true, TargetDepartmentID: dept(20)},
			want:  false,
		},
		{
			name:  "both departments missing",
			facts: PhoneAccessFacts{ViewerEID: 1, TargetFound: true},
			want:  false,
		},
		{
			name:  "viewer is manager",
			facts: PhoneAccessFacts{ViewerEID: 1, TargetFound: true, TargetManagerEID: eid(1)},
			want:  true,
		},
		{
			name:  "viewer is hrbp",
			facts: PhoneAccessFacts{ViewerEID: 7, TargetFound: true, TargetHRBPEID: eid(7)},
			want:  true,
		},
		{
			name:  "someone else is manager",
			facts: PhoneAccessFacts{ViewerEID: 7, TargetFound: true, TargetManagerEID: eid(8), TargetHRBPEID: eid(9)},
			want:  false,
		},
		{
			name:  "target missing",
			facts: PhoneAccessFacts{ViewerEID: 1, ViewerDepartmentID: dept(10), TargetDepartmentID: dept(10)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewSensitiveField(tt.facts))
		})
	}
}

func TestAccessServiceBothDirections(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	org := testhelpers.SeedOrg(t, db)
	access := NewAccessService(db)
	ctx := context.Background()

	check := func(viewer, target int64) bool {
		t.Helper()
		ok, err := access.CanViewPersonalPhone(ctx, viewer, target)
		require.NoError(t, err)
		return ok
	}

	// Alice manages Carol across departments; Carol has no claim on Alice.
	assert.True(t, check(org.Alice.EID, org.Carol.EID))
	assert.False(t, check(org.Carol.EID, org.Alice.EID))

	// Dave is HRBP of Bob; Bob is not Dave's HRBP or manager.
	assert.True(t, check(org.Dave.EID, org.Bob.EID))
	assert.False(t, check(org.Bob.EID, org.Dave.EID))

	// Same department works both ways.
	assert.True(t, check(org.Alice.EID, org.Bob.EID))
	assert.True(t, check(org.Bob.EID, org.Alice.EID))

	// Self access comes from the department, not from being oneself.
	assert.True(t, check(org.Bob.EID, org.Bob.EID))
	assert.False(t, check(org.Eve.EID, org.Eve.EID))

	// Unknown rows never grant access.
	assert.False(t, check(999, org.Bob.EID))
	assert.False(t, check(org.Alice.EID, 999))
}

func TestVisibleEmployeeIDs(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	org := testhelpers.SeedOrg(t, db)
	access := NewAccessService(db)
	ctx := context.Background()

	ids, err := access.VisibleEmployeeIDs(ctx, org.Alice.EID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = access.VisibleEmployeeIDs(ctx, org.Dave.EID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	ids, err = access.VisibleEmployeeIDs(ctx, org.Eve.EID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
