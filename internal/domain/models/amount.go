package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a monetary value in the ledger currency.
//
// Documents written by earlier versions of the system sometimes carry the
// amount as a string ("10,50") or as an integer, so every read path must
// tolerate a non-numeric representation. Decoding never fails: values that
// cannot be parsed come back as zero, which is how the dashboard treats them.
type Amount float64

// ParseAmount normalizes a user-supplied amount to a numeric value. Both
// comma and dot are accepted as the decimal separator.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not a finite number", s)
	}
	return v, nil
}

// MarshalBSONValue always writes the amount as a BSON double, regardless of
// how the document originally stored it.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(float64(a))
}

// UnmarshalBSONValue accepts doubles, 32/64-bit integers, decimal128 and
// strings. Anything else decodes to zero.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Double:
		if v, ok := rv.DoubleOK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Int32:
		if v, ok := rv.Int32OK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Int64:
		if v, ok := rv.Int64OK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Decimal128:
		if d, ok := rv.Decimal128OK(); ok {
			if v, err := strconv.ParseFloat(d.String(), 64); err == nil {
				*a = Amount(v)
				return nil
			}
		}
	case bsontype.String:
		if s, ok := rv.StringValueOK(); ok {
			if v, err := ParseAmount(s); err == nil {
				*a = Amount(v)
				return nil
			}
		}
	}

	*a = 0
	return nil
}

// MarshalJSON renders the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// UnmarshalJSON accepts a number, a quoted number with comma or dot decimal
// separator, or null. Unparseable strings decode to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := ParseAmount(s); err == nil {
			*a = Amount(v)
		} else {
			*a = 0
		}
		return nil
	}

	*a = 0
	return nil
}
