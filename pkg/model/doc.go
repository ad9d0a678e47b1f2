// Package model defines the immutable field declarations consumed by the
// validation engine and the form-state holder. A Field names one input in a
// form (its key, label, declared FieldType and constraints); a Form groups
// fields under an identifier and guarantees key uniqueness. Derived
// properties such as KeyboardType, DefaultHint and DefaultLayout are pure
// functions of the field type so renderers can pick an input style without
// parsing raw configuration.
package model
