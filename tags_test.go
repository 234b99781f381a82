package cnab

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTag(t *testing.T) {
	for _, tt := range []struct {
		name  string
		tag   string
		pos   Position
		kind  Kind
		scale uint8
		ok    bool
	}{
		{"Bare Position", "1..10", Position{Start: 1, End: 10}, Alpha, 0, true},
		{"Single Position", "5..5", Position{Start: 5, End: 5}, Alpha, 0, true},
		{"Alpha", "1..10,alpha", Position{Start: 1, End: 10}, Alpha, 0, true},
		{"Numeric", "1..10,numeric", Position{Start: 1, End: 10}, Numeric, 0, true},
		{"Decimal With Scale", "61..75,decimal(2)", Position{Start: 61, End: 75}, Decimal, 2, true},
		{"Decimal Bare", "1..10,decimal", Position{Start: 1, End: 10}, Decimal, 0, true},
		{"Tag Empty", "", Position{}, 0, 0, false},
		{"Tag Missing End", "10", Position{}, 0, 0, false},
		{"Start Not Integer", "hello..3", Position{}, 0, 0, false},
		{"End Not Integer", "3..hello", Position{}, 0, 0, false},
		{"Tag Contains a Space", "4.. 11", Position{}, 0, 0, false},
		{"Tag Interval Invalid", "14..5", Position{}, 0, 0, false},
		{"Tag Zero Start", "0..3", Position{}, 0, 0, false},
		{"Unknown Kind", "1..10,boolean", Position{}, 0, 0, false},
		{"Trailing Comma", "1..10,", Position{}, 0, 0, false},
		{"Decimal Unclosed", "1..10,decimal(2", Position{}, 0, 0, false},
		{"Decimal Scale Not Integer", "1..10,decimal(x)", Position{}, 0, 0, false},
		{"Decimal Scale Out Of Range", "1..10,decimal(300)", Position{}, 0, 0, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			pos, kind, scale, ok := parseTag(tt.tag)
			if tt.ok != ok {
				t.Errorf("parseTag() ok want %v, have %v", tt.ok, ok)
			}

			// only check the parsed parts if valid tags are expected
			if tt.ok {
				if tt.pos != pos {
					t.Errorf("parseTag() pos want %v, have %v", tt.pos, pos)
				}
				if tt.kind != kind {
					t.Errorf("parseTag() kind want %v, have %v", tt.kind, kind)
				}
				if tt.scale != scale {
					t.Errorf("parseTag() scale want %v, have %v", tt.scale, scale)
				}
			}
		})
	}
}

func TestSchemaFor(t *testing.T) {
	type header struct {
		Banco int     `fixed:"1..3,numeric"`
		Nome  string  `fixed:"31..60,alpha"`
		Saldo float64 `fixed:"61..75,decimal(2)"`
	}

	want := []FieldSpec{
		{Name: "Banco", Pos: Position{Start: 1, End: 3}, Kind: Numeric},
		{Name: "Nome", Pos: Position{Start: 31, End: 60}, Kind: Alpha},
		{Name: "Saldo", Pos: Position{Start: 61, End: 75}, Kind: Decimal, Scale: 2},
	}

	t.Run("Value", func(t *testing.T) {
		s, err := SchemaFor(header{})
		if err != nil {
			t.Fatalf("SchemaFor() err %v", err)
		}
		if !reflect.DeepEqual(want, s.Fields()) {
			t.Errorf("SchemaFor() fields want %+v, have %+v", want, s.Fields())
		}
	})

	t.Run("Typed Nil Pointer", func(t *testing.T) {
		s, err := SchemaFor((*header)(nil))
		if err != nil {
			t.Fatalf("SchemaFor() err %v", err)
		}
		if s.LineLen() != 75 {
			t.Errorf("LineLen() want 75, have %d", s.LineLen())
		}
	})

	t.Run("Untagged And Unexported Fields Skipped", func(t *testing.T) {
		type mixed struct {
			Banco int    `fixed:"1..3,numeric"`
			Skip  string
			note  string `fixed:"4..10"`
		}
		s, err := SchemaFor(mixed{})
		if err != nil {
			t.Fatalf("SchemaFor() err %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("Len() want 1, have %d", s.Len())
		}
	})

	t.Run("Nil", func(t *testing.T) {
		if _, err := SchemaFor(nil); err == nil {
			t.Error("SchemaFor(nil) should error")
		}
	})

	t.Run("Non Struct", func(t *testing.T) {
		if _, err := SchemaFor(42); err == nil {
			t.Error("SchemaFor(42) should error")
		}
	})
}

func TestStructSpecValidatedOnce(t *testing.T) {
	type clash struct {
		A string `fixed:"1..5"`
		B string `fixed:"3..8"`
	}

	_, err1 := SchemaFor(clash{})
	_, err2 := SchemaFor(clash{})

	var oe *OverlapError
	if !errors.As(err1, &oe) {
		t.Fatalf("SchemaFor() want *OverlapError, have %v", err1)
	}
	// The cached spec fails every use with the same error.
	if err2 != err1 {
		t.Errorf("SchemaFor() second error differs: %v vs %v", err2, err1)
	}

	var rec Record
	if err := Bind(rec, &clash{}); err == nil {
		t.Error("Bind() with invalid layout should error")
	}
	if err := Unmarshal("whatever", &clash{}); err == nil {
		t.Error("Unmarshal() with invalid layout should error")
	}
}

func TestStructSpecMalformedTag(t *testing.T) {
	type bad struct {
		A string `fixed:"banana"`
	}
	_, err := SchemaFor(bad{})
	if err == nil {
		t.Fatal("SchemaFor() should reject a malformed tag")
	}
}
