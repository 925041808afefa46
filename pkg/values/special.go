package values

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// RefV points at a document, class, index, database, function or key. Class
// and Database scope the id; both are optional. Refs are immutable, compare
// them with Equals.
type RefV struct {
	ID       string `json:"id"`
	Class    *RefV  `json:"class,omitempty"`
	Database *RefV  `json:"database,omitempty"`
}

func NewRef(id string, class, database *RefV) (*RefV, error) {
	if id == "" {
		return nil, InvalidValueError{Reason: "ref id must not be empty"}
	}
	return &RefV{ID: id, Class: class, Database: database}, nil
}

func (r *RefV) isValue() {}

func (r *RefV) MarshalJSON() ([]byte, error) {
	contents, err := json.Marshal(struct {
		ID       string `json:"id"`
		Class    *RefV  `json:"class,omitempty"`
		Database *RefV  `json:"database,omitempty"`
	}{r.ID, r.Class, r.Database})
	if err != nil {
		return nil, err
	}
	return tagged("@ref", contents), nil
}

// Equals reports structural equality, recursing through Class and Database.
func (r *RefV) Equals(other Value) bool {
	o, ok := other.(*RefV)
	if !ok || o == nil {
		return false
	}
	if r.ID != o.ID {
		return false
	}
	if (r.Class == nil) != (o.Class == nil) || (r.Database == nil) != (o.Database == nil) {
		return false
	}
	if r.Class != nil && !r.Class.Equals(o.Class) {
		return false
	}
	if r.Database != nil && !r.Database.Equals(o.Database) {
		return false
	}
	return true
}

// SetRefV wraps the expression that denotes a set, e.g. a match. The codec
// treats the contents as opaque beyond the tag.
type SetRefV struct {
	Parameters ObjectV
}

func (s SetRefV) isValue() {}

func (s SetRefV) MarshalJSON() ([]byte, error) {
	contents, err := s.Parameters.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return tagged("@set", contents), nil
}

// QueryV wraps a lambda body so it round-trips as an opaque executable query.
type QueryV struct {
	Lambda Value
}

func (q QueryV) isValue() {}

func (q QueryV) MarshalJSON() ([]byte, error) {
	contents, err := json.Marshal(q.Lambda)
	if err != nil {
		return nil, err
	}
	return tagged("@query", contents), nil
}

// TimeV is an instant in time, always expressed in UTC. The original wire
// string is kept verbatim so fractional digits beyond what time.Time can hold
// survive a round trip.
type TimeV struct {
	TS string
}

func NewTime(ts string) (TimeV, error) {
	if err := validateTimestamp(ts); err != nil {
		return TimeV{}, err
	}
	return TimeV{TS: ts}, nil
}

func TimeFromTime(t time.Time) TimeV {
	return TimeV{TS: t.UTC().Format("2006-01-02T15:04:05.999999999Z")}
}

func (t TimeV) isValue() {}

func (t TimeV) MarshalJSON() ([]byte, error) {
	contents, err := json.Marshal(t.TS)
	if err != nil {
		return nil, err
	}
	return tagged("@ts", contents), nil
}

// Time converts to a native time.Time, truncating fractional seconds beyond
// nanosecond precision.
func (t TimeV) Time() (time.Time, error) {
	if err := validateTimestamp(t.TS); err != nil {
		return time.Time{}, err
	}
	base, frac := splitFraction(strings.TrimSuffix(t.TS, "Z"))
	parsed, err := time.Parse("2006-01-02T15:04:05", base)
	if err != nil {
		return time.Time{}, InvalidValueError{Reason: "malformed timestamp: " + t.TS}
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	for len(frac) > 0 && len(frac) < 9 {
		frac += "0"
	}
	var ns int64
	for _, c := range frac {
		ns = ns*10 + int64(c-'0')
	}
	return parsed.Add(time.Duration(ns)), nil
}

// DateV is a calendar date with no time-of-day component.
type DateV struct {
	Date string
}

func NewDate(date string) (DateV, error) {
	if len(date) != len("2006-01-02") {
		return DateV{}, InvalidValueError{Reason: "malformed date: " + date}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return DateV{}, InvalidValueError{Reason: "malformed date: " + date}
	}
	return DateV{Date: date}, nil
}

func DateFromTime(t time.Time) DateV {
	return DateV{Date: t.UTC().Format("2006-01-02")}
}

func (d DateV) isValue() {}

func (d DateV) MarshalJSON() ([]byte, error) {
	contents, err := json.Marshal(d.Date)
	if err != nil {
		return nil, err
	}
	return tagged("@date", contents), nil
}

func (d DateV) Time() (time.Time, error) {
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return time.Time{}, InvalidValueError{Reason: "malformed date: " + d.Date}
	}
	return t, nil
}

// BytesV is a raw byte sequence, carried on the wire as standard base64.
type BytesV []byte

func BytesFromBase64(encoded string) (BytesV, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, InvalidValueError{Reason: "malformed base64: " + err.Error()}
	}
	return BytesV(raw), nil
}

func (b BytesV) isValue() {}

func (b BytesV) MarshalJSON() ([]byte, error) {
	contents, err := json.Marshal(base64.StdEncoding.EncodeToString(b))
	if err != nil {
		return nil, err
	}
	return tagged("@bytes", contents), nil
}

func tagged(tag string, contents []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteByte('"')
	buf.WriteString(tag)
	buf.WriteString(`":`)
	buf.Write(contents)
	buf.WriteByte('}')
	return buf.Bytes()
}

// validateTimestamp enforces the wire constraint: ISO-8601 with a 'Z' suffix,
// any other offset is rejected.
func validateTimestamp(ts string) error {
	if !strings.HasSuffix(ts, "Z") {
		return InvalidValueError{Reason: "timestamp must be UTC with a 'Z' suffix: " + ts}
	}
	base, frac := splitFraction(strings.TrimSuffix(ts, "Z"))
	if _, err := time.Parse("2006-01-02T15:04:05", base); err != nil {
		return InvalidValueError{Reason: "malformed timestamp: " + ts}
	}
	if frac != "" {
		for _, c := range frac {
			if c < '0' || c > '9' {
				return InvalidValueError{Reason: "malformed timestamp: " + ts}
			}
		}
	} else if strings.Contains(ts, ".") {
		return InvalidValueError{Reason: "malformed timestamp: " + ts}
	}
	return nil
}

func splitFraction(s string) (base, frac string) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
