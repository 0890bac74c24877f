package dataprocessing

// Field identifies one column of the prepared nuclide tables.
// The first NumFeatures fields are the standardized numeric features.
type Field int

const (
	FieldChargeRadius Field = iota
	FieldMassExcess
	FieldBindingEnergyPerNucleon
	FieldAtomicMass
	FieldHalfLife
	FieldZ
	FieldN
	FieldA
	FieldNMinusZ
	FieldSpinParity
	FieldDecay
	FieldRadioactive

	numFields
)

// NumFeatures is the number of standardized features.
const NumFeatures = 5

// Source column names as they appear in the compiled dataset. Leading spaces are
// part of the names and must be kept.
const (
	ColumnIndex                   = "Unnamed: 0"
	ColumnChargeRadius            = "radius_val"
	ColumnChargeRadiusUnc         = "radius_unc"
	ColumnMassExcess              = "MASS EXCESS"
	ColumnMassExcessUnc           = "MASS EXCESS UNC"
	ColumnBindingEnergyPerNucleon = "BINDING ENERGY/A"
	ColumnBindingEnergyUnc        = "BINDING ENERGY UNC"
	ColumnAtomicMass              = "ATOMIC MASS"
	ColumnAtomicMassUnc           = "ATOMIC MASS UNC"
	ColumnHalfLife                = " half_life [s]"
	ColumnZ                       = "z"
	ColumnN                       = "n"
	ColumnA                       = "a"
	ColumnNMinusZ                 = "N-Z"
	ColumnSpinParity              = " jp"
	ColumnDecay                   = " decay"
	ColumnRadioactive             = "radioactive"
)

var fieldNames = [numFields]string{
	FieldChargeRadius:            "charge_radius",
	FieldMassExcess:              "mass_excess",
	FieldBindingEnergyPerNucleon: "binding_energy_per_nucleon",
	FieldAtomicMass:              "atomic_mass",
	FieldHalfLife:                "log_half_life",
	FieldZ:                       "z",
	FieldN:                       "n",
	FieldA:                       "a",
	FieldNMinusZ:                 "n_minus_z",
	FieldSpinParity:              "spin_parity",
	FieldDecay:                   "decay",
	FieldRadioactive:             "radioactive",
}

// String returns a stable identifier for the field, independent of the source naming.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// IsFeature reports whether the field is one of the standardized features.
func (f Field) IsFeature() bool {
	return f >= 0 && f < NumFeatures
}

// Fields returns every field in output column order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// FeatureFields returns the standardized features in output order.
func FeatureFields() []Field {
	return []Field{FieldChargeRadius, FieldMassExcess, FieldBindingEnergyPerNucleon, FieldAtomicMass, FieldHalfLife}
}

// Schema maps every field to its source column and lists the columns the pipeline drops.
type Schema struct {
	IndexColumn        string
	UncertaintyColumns []string
	Columns            [numFields]string
}

// DefaultSchema returns the schema of the compiled IAEA dataset.
func DefaultSchema() Schema {
	return Schema{
		IndexColumn: ColumnIndex,
		UncertaintyColumns: []string{
			ColumnChargeRadiusUnc,
			ColumnMassExcessUnc,
			ColumnBindingEnergyUnc,
			ColumnAtomicMassUnc,
		},
		Columns: [numFields]string{
			FieldChargeRadius:            ColumnChargeRadius,
			FieldMassExcess:              ColumnMassExcess,
			FieldBindingEnergyPerNucleon: ColumnBindingEnergyPerNucleon,
			FieldAtomicMass:              ColumnAtomicMass,
			FieldHalfLife:                ColumnHalfLife,
			FieldZ:                       ColumnZ,
			FieldN:                       ColumnN,
			FieldA:                       ColumnA,
			FieldNMinusZ:                 ColumnNMinusZ,
			FieldSpinParity:              ColumnSpinParity,
			FieldDecay:                   ColumnDecay,
			FieldRadioactive:             ColumnRadioactive,
		},
	}
}

// Column returns the source (and output) column name of a field.
func (s Schema) Column(f Field) string {
	if f < 0 || f >= numFields {
		return ""
	}
	return s.Columns[f]
}

// OutputColumns returns the column names of a prepared table, in order.
func (s Schema) OutputColumns() []string {
	out := make([]string, numFields)
	copy(out, s.Columns[:])
	return out
}

// FieldByColumn resolves a verbatim column name to its field.
func (s Schema) FieldByColumn(name string) (Field, bool) {
	for i, c := range s.Columns {
		if c == name {
			return Field(i), true
		}
	}
	return 0, false
}

// FieldByName resolves either a verbatim column name or a field identifier
// such as "charge_radius".
func (s Schema) FieldByName(name string) (Field, bool) {
	if f, ok := s.FieldByColumn(name); ok {
		return f, true
	}
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// bind locates every field in the header of a frame. The first absent column wins.
func (s Schema) bind(header []string) ([numFields]int, error) {
	var idx [numFields]int
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	for f := Field(0); f < numFields; f++ {
		i, ok := pos[s.Columns[f]]
		if !ok {
			return idx, &MissingColumnError{Column: s.Columns[f], Step: "column selection"}
		}
		idx[f] = i
	}
	return idx, nil
}
