package moderation

import (
	"context"
	"errors"
	"testing"
)

type toggleStub struct {
	on  bool
	err error
}

func (s toggleStub) Enabled(context.Context) (bool, error) { return s.on, s.err }

type bansStub struct {
	banned map[int64]bool
	err    error
	calls  int
}

func (s *bansStub) IsBanned(_ context.Context, id int64) (bool, error) {
	s.calls++
	return s.banned[id], s.err
}

func TestAdmit(t *testing.T) {
	storeDown := errors.New("connection refused")
	cases := []struct {
		name      string
		toggle    toggleStub
		bans      *bansStub
		want      Verdict
		wantErr   bool
		wantCalls int
	}{
		{"admitted", toggleStub{on: true}, &bansStub{}, Admitted, false, 1},
		{"disabled skips blacklist", toggleStub{on: false}, &bansStub{banned: map[int64]bool{7: true}}, Disabled, false, 0},
		{"toggle failure is disabled", toggleStub{err: storeDown}, &bansStub{}, Disabled, false, 0},
		{"banned", toggleStub{on: true}, &bansStub{banned: map[int64]bool{7: true}}, Banned, false, 1},
		{"ban check failure refuses", toggleStub{on: true}, &bansStub{err: storeDown}, Disabled, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewGate(tc.toggle, tc.bans).Admit(context.Background(), 7)
			if got != tc.want {
				t.Fatalf("verdict = %v, want %v", got, tc.want)
			}
			if tc.wantErr != (err != nil) {
				t.Fatalf("err = %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err %v must wrap ErrUnavailable", err)
			}
			if tc.bans.calls != tc.wantCalls {
				t.Fatalf("blacklist calls = %d, want %d", tc.bans.calls, tc.wantCalls)
			}
		})
	}
}
