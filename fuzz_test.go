package cnab_test

import (
	"reflect"
	"testing"

	"github.com/fabiocmazzo/cnabfixedwidth"
)

func FuzzUnmarshal(f *testing.F) {
	typs := []func() any{
		func() any {
			return new(struct {
				F string `fixed:"1..10"`
			})
		},
		func() any {
			return new(struct {
				F *string `fixed:"1..10"`
			})
		},
		func() any {
			return new(struct {
				F int `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F int64 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F int32 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F int16 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F int8 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F uint `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F uint16 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F *uint64 `fixed:"1..10,numeric"`
			})
		},
		func() any {
			return new(struct {
				F float64 `fixed:"1..10,decimal(2)"`
			})
		},
		func() any {
			return new(struct {
				F float32 `fixed:"1..10,decimal(4)"`
			})
		},
	}

	f.Add(`foo       `)
	f.Add(`føø       `)
	f.Add(`       123`)
	f.Add(`0000000123`)
	f.Add(`          `)
	f.Add(`-123      `)
	f.Add(`12345678901234567890`)
	f.Add("foo       \n")
	f.Add("\xffoo       ")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		for _, typ := range typs {
			a, b := typ(), typ()
			errA := cnab.Unmarshal(line, a)
			errB := cnab.Unmarshal(line, b)
			if (errA == nil) != (errB == nil) {
				t.Fatalf("decoding %q twice disagreed: %v vs %v", line, errA, errB)
			}
			if errA != nil {
				continue
			}
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("decoding %q twice produced %#v and %#v", line, a, b)
			}
		}
	})
}

func FuzzSchemaParse(f *testing.F) {
	s, err := cnab.NewSchema(
		cnab.FieldSpec{Name: "texto", Pos: cnab.Position{Start: 1, End: 5}, Kind: cnab.Alpha},
		cnab.FieldSpec{Name: "valor", Pos: cnab.Position{Start: 6, End: 10}, Kind: cnab.Numeric},
		cnab.FieldSpec{Name: "taxa", Pos: cnab.Position{Start: 11, End: 15}, Kind: cnab.Decimal, Scale: 2},
	)
	if err != nil {
		f.Fatal(err)
	}

	f.Add(`ABC  0012300450`)
	f.Add(`ÀÀÀÀÀ0012300450`)
	f.Add(`☃☃☃☃☃     12345`)
	f.Add(`ABC  00123`)
	f.Add("ABC  0012300450\r\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		rec, err := s.Parse(line)
		if err != nil {
			return
		}

		// A successful parse carries a value of the declared kind for every
		// declared field.
		if len(rec) != s.Len() {
			t.Fatalf("parsing %q produced %d values for %d fields", line, len(rec), s.Len())
		}
		for _, fs := range s.Fields() {
			v, ok := rec[fs.Name]
			if !ok {
				t.Fatalf("parsing %q dropped field %q", line, fs.Name)
			}
			if v.Kind() != fs.Kind {
				t.Fatalf("field %q came back %v, layout says %v", fs.Name, v.Kind(), fs.Kind)
			}
		}
	})
}
