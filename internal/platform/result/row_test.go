package result

import (
	"errors"
	"testing"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	bad := errors.New("bad cell")
	rows := []Row[int]{OK(0, 10), Fail[int](1, bad), OK(2, 30)}

	values, failed, err := Collect(rows, PolicySkip)
	if err != nil {
		t.Fatalf("skip policy must not fail: %v", err)
	}
	if len(values) != 2 || values[0] != 10 || values[1] != 30 {
		t.Fatalf("unexpected values: %v", values)
	}
	if len(failed) != 1 || failed[0].Index != 1 {
		t.Fatalf("unexpected failures: %+v", failed)
	}

	_, _, err = Collect(rows, PolicyAbort)
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Index != 1 || !errors.Is(err, bad) {
		t.Fatalf("expected RowError for index 1, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	cases := map[string]Policy{"": PolicySkip, "SKIP": PolicySkip, " abort ": PolicyAbort}
	for in, want := range cases {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("retry"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
