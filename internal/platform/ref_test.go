package platform

import (
	"errors"
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		kind    RefKind
		value   uint64
		title   string
		wantErr bool
	}{
		{in: "0x1a2b", kind: RefHandle, value: 0x1a2b},
		{in: "6699", kind: RefHandle, value: 6699},
		{in: "handle:0xFF", kind: RefHandle, value: 0xff},
		{in: "  handle:42 ", kind: RefHandle, value: 42},
		{in: "number:17", kind: RefNumber, value: 17},
		{in: "title:Secret Notes", kind: RefTitle, title: "Secret Notes"},
		{in: "title:a:b", kind: RefTitle, title: "a:b"},
		{in: "title:Notes ", kind: RefTitle, title: "Notes "},
		{in: " title: Draft", kind: RefTitle, title: " Draft"},
		{in: "handle:0x7fffffff", kind: RefHandle, value: 0x7fffffff},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "handle:zz", wantErr: true},
		{in: "number:-1", wantErr: true},
		{in: "title:", wantErr: true},
		{in: "pid:12", wantErr: true},
		{in: "number:0x8000000000000000", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseRef(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) = %+v, want error", tt.in, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.in, err)
			}
			if ref.Kind != tt.kind || ref.Value != tt.value || ref.Title != tt.title {
				t.Errorf("ParseRef(%q) = %+v, want kind=%s value=%d title=%q", tt.in, ref, tt.kind, tt.value, tt.title)
			}
		})
	}
}

func TestPassthroughResolver(t *testing.T) {
	r := PassthroughResolver{}

	ref, _ := ParseRef("0x10")
	h, err := r.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve handle: %v", err)
	}
	if h != NewHandle(0x10) {
		t.Errorf("Resolve = %s, want 0x10", h)
	}

	ref, _ = ParseRef("title:Main")
	if _, err := r.Resolve(ref); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Resolve title error = %v, want ErrUnsupported", err)
	}
}

func TestParseRef_HandleWidth(t *testing.T) {
	over := "handle:0x100000000"
	ref, err := ParseRef(over)
	if ^uintptr(0) == 0xffffffff {
		if err == nil {
			t.Fatalf("ParseRef(%q) = %+v on a 32-bit build, want error", over, ref)
		}
		return
	}
	if err != nil {
		t.Fatalf("ParseRef(%q) error: %v", over, err)
	}
	if ref.Value != 0x100000000 {
		t.Errorf("ParseRef(%q).Value = %#x, want 0x100000000", over, ref.Value)
	}
}
