package domain

import "testing"

func TestAssertKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    IdentityKind
		want    IdentityKind
		wantErr error
	}{
		{name: "user on user route", kind: KindUser, want: KindUser, wantErr: nil},
		{name: "store on store route", kind: KindStore, want: KindStore, wantErr: nil},
		{name: "user on store route", kind: KindUser, want: KindStore, wantErr: ErrWrongAccountKind},
		{name: "store on user route", kind: KindStore, want: KindUser, wantErr: ErrWrongAccountKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := AssertKind(tt.kind, tt.want); err != tt.wantErr {
				t.Errorf("AssertKind(%q, %q) = %v, want %v", tt.kind, tt.want, err, tt.wantErr)
			}
		})
	}
}

func TestAssertOwner(t *testing.T) {
	if err := AssertOwner("store-a", "store-a"); err != nil {
		t.Errorf("matching ids should pass, got %v", err)
	}
	if err := AssertOwner("store-a", "store-b"); err != ErrForbidden {
		t.Errorf("mismatched ids should fail with ErrForbidden, got %v", err)
	}
	if err := AssertOwner("", "store-b"); err != ErrForbidden {
		t.Errorf("empty token id should fail with ErrForbidden, got %v", err)
	}
}

func TestIdentityKindValid(t *testing.T) {
	if !KindUser.Valid() || !KindStore.Valid() {
		t.Error("known kinds should be valid")
	}
	if IdentityKind("admin").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
