package cnab

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// A Decoder reads fixed-width lines from an input stream and parses them
// one record per line. It tracks line numbers so failures name the line
// that caused them; a caller that wants to survive bad lines checks for
// *LineError and keeps going.
type Decoder struct {
	r    io.Reader // original input, kept so SetEncoding can rewrap it
	data *bufio.Reader
	line int
	done bool
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, data: bufio.NewReader(r)}
}

// SetEncoding transcodes the input from the given character set before
// parsing. Banks still ship CNAB files in legacy single-byte sets:
//
//	d := cnab.NewDecoder(f)
//	d.SetEncoding(charmap.ISO8859_1)
//
// SetEncoding must be called before the first Decode.
func (d *Decoder) SetEncoding(enc encoding.Encoding) {
	d.data = bufio.NewReader(transform.NewReader(d.r, enc.NewDecoder()))
}

// Decode reads from its input and stores the decoded data in the value
// pointed to by v.
//
// When v points to a struct, Decode reads a single line. It returns io.EOF
// once the input is exhausted; a final line without a trailing newline
// still counts, a trailing empty line does not. A line that fails to parse
// or bind returns a *LineError carrying the line number, and the Decoder
// stays usable: the next Decode call reads the next line.
//
// When v points to a slice of structs, Decode reads to the end of the
// input, appending one element per line, and stops at the first bad line.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	if rv.Elem().Kind() == reflect.Slice {
		return d.decodeLines(rv.Elem())
	}

	elem, err := structValueOf(v)
	if err != nil {
		return err
	}
	spec := cachedStructSpec(elem.Type())
	if spec.err != nil {
		return spec.err
	}
	line, ok, err := d.next()
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	if err := unmarshalLine(line, elem, spec); err != nil {
		return &LineError{Line: d.line, Err: err}
	}
	return nil
}

func (d *Decoder) decodeLines(v reflect.Value) error {
	ct := v.Type().Elem()
	if ct.Kind() != reflect.Struct {
		return &InvalidUnmarshalError{reflect.PtrTo(v.Type())}
	}
	spec := cachedStructSpec(ct)
	if spec.err != nil {
		return spec.err
	}
	for {
		line, ok, err := d.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		nv := reflect.New(ct).Elem()
		if err := unmarshalLine(line, nv, spec); err != nil {
			return &LineError{Line: d.line, Err: err}
		}
		v.Set(reflect.Append(v, nv))
	}
}

// DecodeRecord reads the next line and parses it against the given schema,
// for callers working with Records instead of tagged structs. It returns
// io.EOF once the input is exhausted.
func (d *Decoder) DecodeRecord(s *Schema) (Record, error) {
	line, ok, err := d.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	rec, err := s.Parse(line)
	if err != nil {
		return nil, &LineError{Line: d.line, Err: err}
	}
	return rec, nil
}

// Line returns the 1-based number of the last line read. It is zero before
// the first Decode.
func (d *Decoder) Line() int { return d.line }

// next returns the next input line. ok is false once the input is
// exhausted.
func (d *Decoder) next() (line string, ok bool, err error) {
	if d.done {
		return "", false, nil
	}
	line, err = d.data.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}
	if err == io.EOF {
		d.done = true
		if strings.TrimRight(line, "\r\n") == "" {
			// skip a trailing empty line
			return "", false, nil
		}
	}
	d.line++
	return line, true, nil
}

// A LineError wraps a parse or binding failure with the 1-based number of
// the input line that caused it. Unwrap exposes the underlying error, so
// errors.As sees through to the field-level types.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }
