package units

import "testing"

func TestNormalizeDimension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pressure", "pressure"},
		{"Pressure", "pressure"},
		{"tEmPeRaTuRe", "temperature"},
		{"Mass Flow Rate", "mass_flow_rate"},
		{"MASS_FLOW_RATE", "mass_flow_rate"},
		{"MASS FLOW RATE", "mass_flow_rate"},
		{"  kinematic viscosity  ", "kinematic_viscosity"},
		{"volumetric__flow__rate", "volumetric_flow_rate"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeDimension(tc.in); got != tc.want {
			t.Errorf("NormalizeDimension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSystem(t *testing.T) {
	if got := NormalizeSystem(" SI "); got != SystemSI {
		t.Fatalf("NormalizeSystem(\" SI \") = %q", got)
	}
	if got := NormalizeSystem("Engg_Field"); got != SystemEnggField {
		t.Fatalf("NormalizeSystem(\"Engg_Field\") = %q", got)
	}
}

func TestDefaultTableComplete(t *testing.T) {
	table := DefaultTable()
	systems := []SystemID{SystemSI, SystemEnggSI, SystemImperial, SystemUS, SystemCGS, SystemEnggField}
	for dim, entry := range table {
		for _, id := range systems {
			unit, ok := entry[id]
			if !ok || unit == "" {
				t.Errorf("dimension %q: missing unit for system %q", dim, id)
			}
		}
	}
	for _, dim := range []string{"pressure", "length", "temperature", "mass", "time", "area", "volume", "velocity", "force", "energy"} {
		if _, ok := table[dim]; !ok {
			t.Errorf("expected dimension %q in default table", dim)
		}
	}
}

func TestDefaultTableTemperatureUnits(t *testing.T) {
	temp := DefaultTable()["temperature"]
	if temp[SystemSI] != "kelvin" {
		t.Fatalf("si temperature unit = %q, want kelvin", temp[SystemSI])
	}
	if temp[SystemImperial] != "degF" || temp[SystemEnggField] != "degF" {
		t.Fatalf("imperial/engg_field temperature units = %q/%q, want degF", temp[SystemImperial], temp[SystemEnggField])
	}
	if temp[SystemCGS] != "degC" {
		t.Fatalf("cgs temperature unit = %q, want degC", temp[SystemCGS])
	}
}

func TestTableCloneIsDeep(t *testing.T) {
	table := DefaultTable()
	cp := table.Clone()
	cp["pressure"][SystemSI] = "mutated"
	if table["pressure"][SystemSI] != "pascal" {
		t.Fatalf("clone mutation leaked into source table")
	}
}
