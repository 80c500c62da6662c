package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const coordsHeader = "---------------------------------\nCARTESIAN COORDINATES (ANGSTROEM)\n---------------------------------\n"

const optOut = coordsHeader +
	"  O      0.000000    0.000000    0.000000\n  H      0.757000    0.586000    0.000000\n\n" +
	"FINAL SINGLE POINT ENERGY       -76.300000000000\n" +
	coordsHeader +
	"  O      0.000000    0.000000    0.010000\n  H      0.760000    0.590000    0.000000\n\n" +
	"FINAL SINGLE POINT ENERGY       -76.310000000000\n"

// cosmoOrca answers every input with the values both COSMO-RS stages need.
const cosmoOrca = `#!/bin/sh
echo "FINAL SINGLE POINT ENERGY      -76.123456789"
echo "Final Gibbs free energy         ...    -76.29123456 Eh"
echo "Free energy of solvation (dGsolv)  :    -0.01100000 Eh     -6.90 kcal/mol"
echo "                             ****ORCA TERMINATED NORMALLY****"
`

// cleanEnv unsets the configuration variables for the duration of the test.
func cleanEnv(Te *testing.T) {
	Te.Helper()
	for _, v := range []string{"ORCA_PATH", "ORCAPROP_SCRATCH", "ORCAPROP_NICE", "ORCAPROP_NPROCS", "ORCAPROP_LOG_LEVEL"} {
		Te.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func execute(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommands(Te *testing.T) {
	cmd := NewCmdRoot()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, n := range []string{"cosmors", "logp", "liquid", "orca2xyz", "start", "version"} {
		assert.Contains(Te, names, n)
	}
}

func TestGlobalOptionsFromEnv(Te *testing.T) {
	cleanEnv(Te)
	Te.Setenv("ORCA_PATH", "/opt/orca")
	Te.Setenv("ORCAPROP_NPROCS", "4")
	Te.Setenv("ORCAPROP_NICE", "15")
	cmd := &cobra.Command{Use: "cosmors"}
	o := DefaultCosmoRSOptions()
	o.Bind(cmd.Flags())
	require.NoError(Te, cmd.Flags().Parse([]string{"--nice", "0", "--scratch", "/tmp/x"}))
	require.NoError(Te, o.GlobalOptions.Complete(cmd, nil))
	assert.Equal(Te, "/opt/orca/orca", o.Orca)
	assert.Equal(Te, 4, o.NProcs)
	assert.Equal(Te, 0, o.Nice)
	assert.Equal(Te, "/tmp/x", o.Scratch)
	assert.Equal(Te, "/opt/orca/orca", o.Handle().Command())
	assert.NoError(Te, o.GlobalOptions.Validate(nil))
}

func TestGlobalOptionsValidate(Te *testing.T) {
	o := DefaultGlobalOptions()
	assert.NoError(Te, o.Validate(nil))
	o.NProcs = 0
	assert.Error(Te, o.Validate(nil))
	o = DefaultGlobalOptions()
	o.Nice = 40
	assert.Error(Te, o.Validate(nil))
}

func TestGlobalOptionsBadEnv(Te *testing.T) {
	cleanEnv(Te)
	Te.Setenv("ORCAPROP_NICE", "very")
	_, err := execute(Te, "cosmors", "--method", "HF-3c", "water.xyz")
	assert.ErrorContains(Te, err, "reading configuration")
}

func TestMissingFiles(Te *testing.T) {
	cleanEnv(Te)
	for _, c := range []string{"cosmors", "logp", "liquid", "orca2xyz", "start"} {
		_, err := execute(Te, c)
		assert.Error(Te, err, c)
	}
}

func TestCosmoRSInvalid(Te *testing.T) {
	cleanEnv(Te)
	_, err := execute(Te, "cosmors", "water.xyz")
	assert.Error(Te, err, "a method is needed for the vacuum calculation")
	_, err = execute(Te, "cosmors", "--multi", "0", "--method", "HF-3c", "water.xyz")
	assert.Error(Te, err)
	_, err = execute(Te, "logp", "--model", "smd", "--noopt", "water.xyz")
	assert.Error(Te, err)
	_, err = execute(Te, "logp", "--model", "pcm", "water.xyz")
	assert.Error(Te, err)
	_, err = execute(Te, "liquid", "--temperature=-5", "water")
	assert.Error(Te, err)
}

func TestCosmoRS(Te *testing.T) {
	cleanEnv(Te)
	dir := Te.TempDir()
	orca := filepath.Join(dir, "orca")
	require.NoError(Te, os.WriteFile(orca, []byte(cosmoOrca), 0o755))
	xyz := filepath.Join(dir, "water.xyz")
	require.NoError(Te, os.WriteFile(xyz, []byte("3\nwater\nO 0.0 0.0 0.0\nH 0.757 0.586 0.0\nH -0.757 0.586 0.0\n"), 0o644))
	xlsx := filepath.Join(dir, "water.xlsx")
	prom := filepath.Join(dir, "orcaprop.prom")
	out, err := execute(Te, "cosmors", "--orca", orca, "--scratch", dir, "--nice", "0", "--method", "HF-3c", "--xlsx", xlsx, "--metrics-file", prom, xyz)
	require.NoError(Te, err)
	assert.Contains(Te, out, "Job = "+xyz+"\n")
	assert.Contains(Te, out, "Free energy in gas     :  -76.291235  Hartree\n")
	assert.Contains(Te, out, "Electronic energy      :  -76.123457  Hartree\n")
	assert.Contains(Te, out, "Free energy solvation  :  -0.011000  Hartree\n")
	f, err := excelize.OpenFile(xlsx)
	require.NoError(Te, err)
	defer f.Close()
	name, err := f.GetCellValue("COSMO-RS", "B2")
	require.NoError(Te, err)
	assert.Equal(Te, "water", name)
	metrics, err := os.ReadFile(prom)
	require.NoError(Te, err)
	assert.Contains(Te, string(metrics), `orcaprop_jobs_total{status="ok",workflow="cosmors"} 1`)
}

func TestLiquidJobNames(Te *testing.T) {
	cmd := &cobra.Command{Use: "liquid"}
	o := DefaultLiquidOptions()
	o.Bind(cmd.Flags())
	require.NoError(Te, cmd.Flags().Parse([]string{"-j", "water.xyz", "-t", "298", "-t", "310.5"}))
	cleanEnv(Te)
	require.NoError(Te, o.Complete(cmd, []string{"ethanol", "mol.v2.hess"}))
	assert.Equal(Te, []string{"water", "ethanol", "mol.v2"}, o.Jobs)
	assert.Equal(Te, []float64{298, 310.5}, o.Calc.Temperatures)
	assert.NoError(Te, o.Validate(nil))
}

func TestOrca2XYZ(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "water.out")
	require.NoError(Te, os.WriteFile(name, []byte(optOut), 0o644))
	out, err := execute(Te, "orca2xyz", "-f", name)
	require.NoError(Te, err)
	assert.Contains(Te, out, filepath.Join(dir, "water.xyz"))
	data, err := os.ReadFile(filepath.Join(dir, "water.xyz"))
	require.NoError(Te, err)
	expected := " 2\n Energy = -76.300000000000\n  O      0.000000    0.000000    0.000000\n  H      0.757000    0.586000    0.000000\n" +
		" 2\n Energy = -76.310000000000\n  O      0.000000    0.000000    0.010000\n  H      0.760000    0.590000    0.000000\n"
	assert.Equal(Te, expected, string(data))

	_, err = execute(Te, "orca2xyz", "--zstd", name)
	require.NoError(Te, err)
	assert.FileExists(Te, filepath.Join(dir, "water.xyz.zst"))
}

func TestOrca2XYZErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := execute(Te, "orca2xyz", "-t", "irc", filepath.Join(dir, "water.out"))
	assert.ErrorContains(Te, err, "invalid options")
	_, err = execute(Te, "orca2xyz", filepath.Join(dir, "missing.out"))
	assert.ErrorContains(Te, err, "not found")
	empty := filepath.Join(dir, "empty.out")
	require.NoError(Te, os.WriteFile(empty, []byte("nothing here\n"), 0o644))
	_, err = execute(Te, "orca2xyz", "-t", "scan", empty)
	assert.Error(Te, err)
	assert.NoFileExists(Te, filepath.Join(dir, "empty.xyz"))
}

func TestStart(Te *testing.T) {
	cleanEnv(Te)
	dir := Te.TempDir()
	orca := filepath.Join(dir, "orca")
	require.NoError(Te, os.WriteFile(orca, []byte("#!/bin/sh\ncat \"$1\"\n"), 0o755))
	inp := filepath.Join(dir, "job.inp")
	require.NoError(Te, os.WriteFile(inp, []byte("! HF-3c\n* xyz 0 1\nHe 0 0 0\n*\n"), 0o644))
	_, err := execute(Te, "start", "--orca", orca, "--scratch", Te.TempDir(), "--nice", "0", "-n", "3", "-d", dir, inp)
	require.NoError(Te, err)
	data, err := os.ReadFile(filepath.Join(dir, "job.out"))
	require.NoError(Te, err)
	assert.Equal(Te, "%pal nprocs 3 end\n! HF-3c\n* xyz 0 1\nHe 0 0 0\n*\n", string(data))

	_, err = execute(Te, "start", "-d", filepath.Join(dir, "nowhere"), inp)
	assert.ErrorContains(Te, err, "not a directory")
}
