package cnab

func stringp(v string) *string    { return &v }
func intp(v int) *int             { return &v }
func float64p(v float64) *float64 { return &v }

// TextValue is a string that implements the encoding.TextUnmarshaler
// interface. This is useful for testing.
type TextValue struct {
	S   string
	Err error
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *TextValue) UnmarshalText(text []byte) error {
	v.S = string(text)
	return v.Err
}

// headerLine is a real-shaped CNAB 240 file header: exactly 240 characters,
// bank code 341, batch 0000, record type 0, bank name at 103..113.
const headerLine = "34100000         2297460810001556256000036236       0625610000000362366 MARTINS RIBEIRO ADMINISTRADORABANCO TESTE                              10312202508440000000108501600                                                                    "

// headerSchema mirrors the headerLine layout.
func headerSchema() *Schema {
	s, err := NewSchema(
		FieldSpec{Name: "codigo_banco", Pos: Position{Start: 1, End: 3}, Kind: Numeric},
		FieldSpec{Name: "lote_servico", Pos: Position{Start: 4, End: 7}, Kind: Numeric},
		FieldSpec{Name: "tipo_registro", Pos: Position{Start: 8, End: 8}, Kind: Numeric},
		FieldSpec{Name: "empresa", Pos: Position{Start: 73, End: 102}, Kind: Alpha},
		FieldSpec{Name: "nome_banco", Pos: Position{Start: 103, End: 113}, Kind: Alpha},
	)
	if err != nil {
		panic(err)
	}
	return s
}
