package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// NuclideHeader is the header of the compiled nuclide dataset, including the index,
// the uncertainty columns and the leading spaces of some names.
const NuclideHeader = "Unnamed: 0,z,n,a,N-Z,radius_val,radius_unc,MASS EXCESS,MASS EXCESS UNC," +
	"BINDING ENERGY/A,BINDING ENERGY UNC,ATOMIC MASS,ATOMIC MASS UNC, half_life [s], jp, decay,radioactive"

// NuclideRows are four nuclides. Two fall in the N=18..30 band (n=20, n=28).
// Charge radii have population mean 3.2 and standard deviation 0.3.
var NuclideRows = []string{
	"0,8,8,16,0,2.9,0.01,-4737.0,0.0,7976.2,0.0,15994914.6,0.3,10,0+,STABLE,0",
	"1,10,20,30,10,3.5,0.02,1000.5,2.1,7800.1,0.1,30000000.1,0.5,100,0+,B-,1",
	"2,12,28,40,16,2.9,0.03,5000.2,3.3,7700.4,0.2,40000000.2,0.6,1000,1/2-,B-,1",
	"3,20,40,60,20,3.5,0.04,9000.9,4.4,7600.8,0.3,60000000.3,0.7,10000,3/2+,EC,1",
}

// NuclideCSV joins the header and the given rows. With no rows it uses NuclideRows.
func NuclideCSV(rows ...string) string {
	if len(rows) == 0 {
		rows = NuclideRows
	}
	return NuclideHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// WriteNuclideCSV writes content to a temporary combined_data.csv and returns its path.
func WriteNuclideCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "combined_data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
