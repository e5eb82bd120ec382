package lookup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sertec/pkg/platform/sentinel"
)

// CodeTable maps legacy short codes ("01", "I") to their spelled-out value.
type CodeTable map[string]string

// Tables holds the code tables of every coded backend field.
type Tables struct {
	Estado    CodeTable `yaml:"estado"`
	Tipo      CodeTable `yaml:"tipo"`
	Prioridad CodeTable `yaml:"prioridad"`
}

// DefaultTables returns the code tables used by the backend today. The
// backend mixes these codes with literal values across records.
func DefaultTables() Tables {
	return Tables{
		Estado: CodeTable{
			"01": "pendiente",
			"1":  "pendiente",
			"02": "en proceso",
			"2":  "en proceso",
			"03": "completada",
			"3":  "completada",
			"04": "cancelada",
			"4":  "cancelada",
			"05": "rechazada",
			"5":  "rechazada",
		},
		Tipo: CodeTable{
			"I": "instalacion",
			"M": "mantencion",
			"R": "reparacion",
			"G": "garantia",
			"V": "visita tecnica",
		},
		Prioridad: CodeTable{
			"A": "alta",
			"M": "media",
			"B": "baja",
			"U": "urgente",
		},
	}
}

// MapCodedField resolves code against table. The trimmed code is looked up as
// is, then upper-cased. Unknown codes pass through trimmed and lower-cased.
func MapCodedField(code string, table CodeTable) string {
	key := strings.TrimSpace(code)
	if v, ok := table[key]; ok {
		return v
	}
	if v, ok := table[strings.ToUpper(key)]; ok {
		return v
	}
	return lower(key)
}

// LoadTables reads code tables from a YAML file and merges them over
// DefaultTables. An empty path returns the defaults.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Tables{}, fmt.Errorf("code tables %s: %w", path, sentinel.ErrNotFound)
	}
	if err != nil {
		return Tables{}, fmt.Errorf("read code tables: %w", err)
	}
	return DecodeTables(bytes.NewReader(data))
}

// DecodeTables decodes YAML code tables and merges them over DefaultTables.
//
//	estado:
//	  "06": en espera
//	tipo:
//	  P: presupuesto
func DecodeTables(r io.Reader) (Tables, error) {
	var override Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && err != io.EOF {
		return Tables{}, fmt.Errorf("decode code tables: %w", err)
	}

	tables := DefaultTables()
	merge(tables.Estado, override.Estado)
	merge(tables.Tipo, override.Tipo)
	merge(tables.Prioridad, override.Prioridad)
	return tables, nil
}

func merge(dst, src CodeTable) {
	for k, v := range src {
		dst[strings.TrimSpace(k)] = lower(strings.TrimSpace(v))
	}
}
