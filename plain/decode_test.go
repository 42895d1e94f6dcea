package plain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{
			in:   "a: 1\nb: [x, 2.5, true, null]\n",
			want: map[string]any{"a": int64(1), "b": []any{"x", 2.5, true, nil}},
		},
		{
			in:   `{"a": {"b": -3}}`,
			want: map[string]any{"a": map[string]any{"b": int64(-3)}},
		},
		{
			in:   "- 1\n- {}\n",
			want: []any{int64(1), map[string]any{}},
		},
		{
			in:   "hello\n",
			want: "hello",
		},
	}
	for i, tc := range tests {
		got, err := Decode([]byte(tc.in))
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%d (-want +got):\n%s", i, diff)
		}
	}
}

func TestDecodeMaps(t *testing.T) {
	tests := []struct {
		in   string
		want []Entry
	}{
		{
			in:   "1: one\n2: two\n",
			want: []Entry{{int64(1), "one"}, {int64(2), "two"}},
		},
		{
			in:   "$map: true\nz: 1\na: 2\n",
			want: []Entry{{"z", int64(1)}, {"a", int64(2)}},
		},
	}
	for i, tc := range tests {
		got, err := Decode([]byte(tc.in))
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		m, ok := got.(*Map)
		if !ok {
			t.Errorf("%d: got %T", i, got)
			continue
		}
		if diff := cmp.Diff(tc.want, m.Entries()); diff != "" {
			t.Errorf("%d (-want +got):\n%s", i, diff)
		}
	}
}

func TestDecodeExtended(t *testing.T) {
	e := NewExtender(map[string]any{"n": int64(0)})
	dec := NewDecoder().Register("counter", e)
	got, err := dec.Decode([]byte("$extend: counter\nn: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	x, ok := AsExtended(got)
	if !ok || x.Extender != e {
		t.Fatalf("got %#v", got)
	}
	if diff := cmp.Diff(map[string]any{"n": int64(4)}, x.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}

	_, err = dec.Decode([]byte("$extend: other\n"))
	if !errors.Is(err, ErrUnknownExtender) {
		t.Errorf("got %v want %v", err, ErrUnknownExtender)
	}
	if _, err := dec.Decode([]byte("$extend: counter\n$map: true\n")); err == nil {
		t.Error("extended map decoded")
	}
}
