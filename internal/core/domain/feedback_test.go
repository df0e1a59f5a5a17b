package domain

import "testing"

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusPending, StatusSubmitted, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusPending, false},
		{StatusSubmitted, StatusPending, false},
		{StatusSubmitted, StatusExpired, false},
		{StatusExpired, StatusSubmitted, false},
		{StatusExpired, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	for rating, want := range map[int]bool{
		0:  false,
		1:  true,
		3:  true,
		5:  true,
		6:  false,
		-1: false,
	} {
		if got := ValidRating(rating); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", rating, got, want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		RoleHR:     true,
		RoleClient: true,
		"admin":    false,
		"":         false,
	} {
		if got := ValidRole(role); got != want {
			t.Errorf("ValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}
