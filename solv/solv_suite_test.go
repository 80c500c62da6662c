package solv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSolv(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Solv Suite")
}

// fakeORCA reads the input it gets and prints the canned output for that kind of job,
// from the file <kind>.out next to the script. Each call is logged to calls.log.
const fakeORCA = `#!/bin/sh
here=$(dirname "$0")
d=$(cat "$1")
case "$d" in
	*printthermochem*) out=thermo ;;
	*"radius[8] 1.87"*) out=cavity ;;
	*"radius[8] 1.7"*) out=bader ;;
	*'SMDsolvent "water"'*) out=smd-water ;;
	*'SMDsolvent "octanol"'*) out=smd-octanol ;;
	*'solvent "1-octanol"'*) out=crs-octanol ;;
	*'solvent "water"'*) out=crs-water ;;
	*solventfilename*) out=crs-water ;;
	*NOITER*) out=noiter ;;
	*) out=vacuum ;;
esac
echo "$out" >> "$here/calls.log"
cat "$here/$out.out"
`

const coordsBlock = "---------------------------------\nCARTESIAN COORDINATES (ANGSTROEM)\n---------------------------------\n"

var cannedOutputs = map[string]string{
	"vacuum": "Final Gibbs free energy         ...    -76.40000000 Eh\n" +
		"FINAL SINGLE POINT ENERGY       -76.450000000000\n****ORCA TERMINATED NORMALLY****\n",
	"noiter":    "FINAL SINGLE POINT ENERGY       -76.000000000000\n",
	"crs-water": "Free energy of solvation (dGsolv)  :    -0.01000000 Eh     -6.27 kcal/mol\n",
	"crs-octanol": "Free energy of solvation (dGsolv)  :    -0.01200000 Eh     -7.53 kcal/mol\n" +
		"Free energy of solvation (dGsolv)  :    -0.09900000 Eh     -7.53 kcal/mol\n",
	"smd-water": coordsBlock + "  O      0.000000    0.000000    0.100000\n\nFINAL SINGLE POINT ENERGY       -76.400000000000\n" +
		coordsBlock + "  O      0.000000    0.000000    0.200000\n\nFINAL SINGLE POINT ENERGY       -76.500000000000\n",
	"smd-octanol": coordsBlock + "  O      0.000000    0.000000    0.300000\n\nFINAL SINGLE POINT ENERGY       -76.510000000000\n",
	"thermo": "Total Mass                    ...     18.02 AMU\n" +
		"Translational entropy           ...      0.01600000 Eh     10.04 kcal/mol\n" +
		"Rotational entropy              ...      0.00600000 Eh      3.77 kcal/mol\n" +
		"Final Gibbs free energy         ...    -76.40000000 Eh\n" +
		"Translational entropy           ...      0.01700000 Eh     10.67 kcal/mol\n" +
		"Rotational entropy              ...      0.00650000 Eh      4.08 kcal/mol\n" +
		"Final Gibbs free energy         ...    -76.41000000 Eh\n",
	"cavity": "Cavity Volume                                     ...     216.0000000\n",
	"bader":  "Cavity Volume                                     ...     125.0000000\n",
}

// installFakeORCA writes the fake ORCA and its outputs to a new directory and
// returns the path of the script. overrides replaces some of the canned outputs.
func installFakeORCA(overrides map[string]string) string {
	dir := GinkgoT().TempDir()
	for k, v := range cannedOutputs {
		if o, ok := overrides[k]; ok {
			v = o
		}
		Expect(os.WriteFile(filepath.Join(dir, k+".out"), []byte(v), 0o644)).To(Succeed())
	}
	script := filepath.Join(dir, "orca")
	Expect(os.WriteFile(script, []byte(fakeORCA), 0o755)).To(Succeed())
	return script
}

// calls returns the kinds of jobs the fake ORCA has run, in order.
func calls(script string) []string {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(script), "calls.log"))
	if os.IsNotExist(err) {
		return nil
	}
	Expect(err).NotTo(HaveOccurred())
	return strings.Fields(string(data))
}

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	return path
}
