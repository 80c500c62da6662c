package solv_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/qm"
	"github.com/rmera/orcaprop/solv"
	"github.com/rmera/orcaprop/thermo"
)

const waterXYZ = "1\nWater\nO 0.0 0.0 0.0\n"

var _ = Describe("Runner", func() {
	var (
		dir    string
		script string
		out    *bytes.Buffer
		runner *solv.Runner
		ctx    context.Context
	)

	setup := func(overrides map[string]string) {
		script = installFakeORCA(overrides)
		handle := qm.NewOrcaHandle(qm.RunConfig{Command: script, ScratchDir: GinkgoT().TempDir(), NProcs: 2}, nil)
		out = new(bytes.Buffer)
		runner = solv.NewRunner(handle, out, nil)
		runner.SetDir(dir)
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		ctx = context.Background()
		setup(nil)
	})

	Describe("CosmoRS", func() {
		It("computes gas-phase and solvation energies", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			res, err := runner.CosmoRS(ctx, []string{job}, &solv.CosmoRSOptions{Method: "HF-3c", Solvent: "water", Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(1))
			Expect(res[0].Err).NotTo(HaveOccurred())
			Expect(res[0].Name).To(Equal("Water"))
			Expect(res[0].GGas).To(Equal(-76.4))
			Expect(res[0].EEl).To(Equal(-76.45))
			Expect(res[0].GSolv).To(Equal(-0.01))
			Expect(calls(script)).To(Equal([]string{"vacuum", "crs-water"}))
			Expect(out.String()).To(ContainSubstring("Free energy in gas     :  -76.400000  Hartree\n"))
			Expect(out.String()).To(ContainSubstring("Free energy solvation  :  -0.010000  Hartree\n"))
			Expect(out.String()).To(ContainSubstring("Job execution time  :  "))
			Expect(filepath.Join(dir, solv.ErrorLog)).NotTo(BeAnExistingFile())
		})

		It("runs a NOITER job when the vacuum calculation is skipped", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			res, err := runner.CosmoRS(ctx, []string{job}, &solv.CosmoRSOptions{NoVacuum: true, Solvent: "water", Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].Err).NotTo(HaveOccurred())
			Expect(res[0].Vacuum).To(BeFalse())
			Expect(res[0].GGas).To(BeZero())
			Expect(calls(script)).To(Equal([]string{"noiter", "crs-water"}))
			Expect(out.String()).NotTo(ContainSubstring("Free energy in gas"))
		})

		It("uses a solvent file", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			solvent := writeFile(dir, "dmso.xyz", "1\nDMSO\nS 0.0 0.0 0.0\n")
			res, err := runner.CosmoRS(ctx, []string{job}, &solv.CosmoRSOptions{Method: "HF-3c", SolventFile: solvent, Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].Err).NotTo(HaveOccurred())
			Expect(calls(script)).To(Equal([]string{"vacuum", "crs-water"}))
		})

		It("writes error.log and goes on with the next job when a value is missing", func() {
			setup(map[string]string{"crs-water": "SCF NOT CONVERGED\n"})
			bad := writeFile(dir, "bad.xyz", waterXYZ)
			missing := filepath.Join(dir, "missing.xyz")
			res, err := runner.CosmoRS(ctx, []string{bad, missing}, &solv.CosmoRSOptions{Method: "HF-3c", Solvent: "water", Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(2))
			Expect(errors.Is(res[0].Err, qm.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(res[0].Err, qm.ErrUnparsable)).To(BeFalse())
			Expect(errors.Is(res[1].Err, os.ErrNotExist)).To(BeTrue())
			Expect(calls(script)).To(Equal([]string{"vacuum", "crs-water"}))
			// the log is overwritten by the second failure, which has no outputs
			data, err := os.ReadFile(filepath.Join(dir, solv.ErrorLog))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(BeEmpty())
		})

		It("dumps every stage output to error.log", func() {
			setup(map[string]string{"crs-water": "SCF NOT CONVERGED\n"})
			bad := writeFile(dir, "bad.xyz", waterXYZ)
			res, err := runner.CosmoRS(ctx, []string{bad}, &solv.CosmoRSOptions{Method: "HF-3c", Solvent: "water", Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].Err).To(HaveOccurred())
			data, err := os.ReadFile(filepath.Join(dir, solv.ErrorLog))
			Expect(err).NotTo(HaveOccurred())
			sep := "\n-----------------------------------------------\n"
			Expect(string(data)).To(Equal(cannedOutputs["vacuum"] + sep + "SCF NOT CONVERGED\n" + sep))
		})

		It("rejects invalid options", func() {
			_, err := runner.CosmoRS(ctx, []string{"x.xyz"}, &solv.CosmoRSOptions{Solvent: "water", Multi: 1})
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
			_, err = runner.CosmoRS(ctx, []string{"x.xyz"}, &solv.CosmoRSOptions{Method: "HF-3c", Multi: 1})
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
			Expect(calls(script)).To(BeEmpty())
		})

		It("stops when the context is cancelled", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res, err := runner.CosmoRS(cctx, []string{job}, &solv.CosmoRSOptions{Method: "HF-3c", Solvent: "water", Multi: 1})
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(res).To(BeEmpty())
		})

		It("archives the raw outputs when asked", func() {
			runner.KeepOutputs(true)
			job := writeFile(dir, "water.xyz", waterXYZ)
			_, err := runner.CosmoRS(ctx, []string{job}, &solv.CosmoRSOptions{Method: "HF-3c", Solvent: "water", Multi: 1})
			Expect(err).NotTo(HaveOccurred())
			f, err := os.Open(filepath.Join(dir, "water.outputs.zst"))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			dec, err := zstd.NewReader(f)
			Expect(err).NotTo(HaveOccurred())
			defer dec.Close()
			data, err := io.ReadAll(dec)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(HavePrefix("### stage vacuum\n" + cannedOutputs["vacuum"]))
			Expect(string(data)).To(ContainSubstring("### stage cosmo-rs\n" + cannedOutputs["crs-water"]))
		})
	})

	Describe("LogP", func() {
		It("gives COSMO-RS and SMD estimates after the optimizations", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			res, err := runner.LogP(ctx, []string{job}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].Err).NotTo(HaveOccurred())
			Expect(calls(script)).To(Equal([]string{"smd-water", "smd-octanol", "crs-water", "crs-octanol"}))

			crs, _ := thermo.LogP(-0.012, -0.010, orcaprop.StdTemp)
			smd, _ := thermo.LogP(-76.51, -76.50, orcaprop.StdTemp)
			Expect(res[0].LogP).To(Equal(map[string]float64{solv.EstimatorCosmoRS: crs, solv.EstimatorSMD: smd}))

			data, err := os.ReadFile(filepath.Join(dir, solv.DefLogPResults))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("For job Water LogP = " + orcaprop.FloatString(crs) + " (COSMO-RS)\n" +
				"For job Water LogP = " + orcaprop.FloatString(smd) + " (SMD)\n"))

			h2o, err := os.ReadFile(filepath.Join(dir, "water.H2O.xyz"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(h2o)).To(Equal("1\nWater\n  O      0.000000    0.000000    0.200000"))
			oct, err := os.ReadFile(filepath.Join(dir, "water.OCTANOL.xyz"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(oct)).To(Equal("1\nWater\n  O      0.000000    0.000000    0.300000"))
		})

		It("appends to the results file", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			writeFile(dir, "results.txt", "previous line\n")
			o := solv.DefaultLogPOptions()
			o.ResultsFile = "results.txt"
			o.NoOpt = true
			_, err := runner.LogP(ctx, []string{job}, o)
			Expect(err).NotTo(HaveOccurred())
			data, err := os.ReadFile(filepath.Join(dir, "results.txt"))
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Split(string(data), "\n")).To(HaveLen(3))
			Expect(string(data)).To(HavePrefix("previous line\nFor job Water LogP = "))
			Expect(calls(script)).To(Equal([]string{"crs-water", "crs-octanol"}))
			Expect(filepath.Join(dir, "water.H2O.xyz")).NotTo(BeAnExistingFile())
		})

		It("uses only the SMD optimizations with the smd model", func() {
			job := writeFile(dir, "water.xyz", waterXYZ)
			o := solv.DefaultLogPOptions()
			o.Model = solv.ModelSMD
			res, err := runner.LogP(ctx, []string{job}, o)
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].LogP).To(HaveKey(solv.EstimatorSMD))
			Expect(res[0].LogP).NotTo(HaveKey(solv.EstimatorCosmoRS))
			Expect(calls(script)).To(Equal([]string{"smd-water", "smd-octanol"}))
		})

		It("refuses the smd model without optimizations", func() {
			o := solv.DefaultLogPOptions()
			o.Model = solv.ModelSMD
			o.NoOpt = true
			_, err := runner.LogP(ctx, []string{"water.xyz"}, o)
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
			o.NoOpt = false
			o.Model = "pcm"
			_, err = runner.LogP(ctx, []string{"water.xyz"}, o)
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
			Expect(calls(script)).To(BeEmpty())
		})
	})

	Describe("LiquidFreeEnergy", func() {
		var job string

		BeforeEach(func() {
			job = filepath.Join(dir, "water")
			writeFile(dir, "water.xyz", waterXYZ)
			writeFile(dir, "water.hess", "$orca_hessian_file\n")
		})

		It("computes the free energy in the liquid for each temperature", func() {
			res, err := runner.LiquidFreeEnergy(ctx, []string{job}, &solv.LiquidOptions{Multi: 1, Temperatures: []float64{298, 310}})
			Expect(err).NotTo(HaveOccurred())
			r := res[0]
			Expect(r.Err).NotTo(HaveOccurred())
			Expect(calls(script)).To(Equal([]string{"thermo", "cavity", "bader"}))
			Expect(r.Mass).To(Equal(18.02))
			Expect(r.VCav).To(Equal(216.0))
			Expect(r.VMol).To(Equal(125.0))
			vfree, _ := thermo.VFree(125, 216)
			Expect(r.VFree).To(Equal(vfree))
			Expect(r.GGas).To(Equal([]float64{-76.4, -76.41}))
			st, _ := thermo.STLiquidSeries(vfree, []float64{298, 310}, 18.02)
			Expect(r.STLiquid).To(Equal(st))
			Expect(r.GLiquid).To(Equal([]float64{thermo.GLiquid(-76.4, 0.016, st[0]), thermo.GLiquid(-76.41, 0.017, st[1])}))
			line := func(label, value string) string { return fmt.Sprintf("%-45s  = %s\n", label, value) }
			Expect(out.String()).To(ContainSubstring(line("Molar mass, amu", "18.02")))
			Expect(out.String()).To(ContainSubstring(line("Temperature, Kelvin", "298.0\t\t310.0")))
			Expect(out.String()).To(ContainSubstring(line("Total Gibbs in gas, Hartree", "-76.4\t-76.41")))
			Expect(out.String()).To(ContainSubstring(line("Free Volume, Angstrom^3", fmt.Sprintf("%.8f", vfree))))
		})

		It("fails when the output has values for a different number of temperatures", func() {
			res, err := runner.LiquidFreeEnergy(ctx, []string{job}, solv.DefaultLiquidOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(errors.Is(res[0].Err, thermo.ErrMismatch)).To(BeTrue())
			data, err := os.ReadFile(filepath.Join(dir, solv.ErrorLog))
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(string(data), "-----------------------------------------------")).To(Equal(3))
		})

		It("reports a cavity smaller than the molecule", func() {
			setup(map[string]string{"cavity": "Cavity Volume      ...     100.0\n"})
			res, err := runner.LiquidFreeEnergy(ctx, []string{job}, &solv.LiquidOptions{Multi: 1, Temperatures: []float64{298, 310}})
			Expect(err).NotTo(HaveOccurred())
			Expect(errors.Is(res[0].Err, thermo.ErrDomain)).To(BeTrue())
		})

		It("rejects non-positive temperatures", func() {
			_, err := runner.LiquidFreeEnergy(ctx, []string{job}, &solv.LiquidOptions{Multi: 1, Temperatures: []float64{298, 0}})
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
			_, err = runner.LiquidFreeEnergy(ctx, []string{job}, &solv.LiquidOptions{Multi: 1})
			Expect(errors.Is(err, solv.ErrInvalidOptions)).To(BeTrue())
		})
	})
})

var _ = Describe("WriteXLSX", func() {
	It("writes one row per job", func() {
		table := solv.LogPTable{
			{File: "water.xyz", Name: "Water", LogP: map[string]float64{solv.EstimatorCosmoRS: -0.5}},
			{File: "bad.xyz", Name: "Bad", Err: errors.New("no energy")},
		}
		var buf bytes.Buffer
		Expect(solv.WriteXLSX(&buf, table)).To(Succeed())
		f, err := excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		Expect(f.GetSheetList()).To(Equal([]string{"logP"}))
		rows, err := f.GetRows("logP")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0][:3]).To(Equal([]string{"File", "Name", "LogP COSMO-RS"}))
		Expect(rows[1][2]).To(Equal("-0.5"))
		Expect(rows[2][5]).To(Equal("no energy"))
	})

	It("writes one row per temperature for liquid results", func() {
		table := solv.LiquidTable{{Job: "water", Name: "Water", Temperatures: []float64{298, 310},
			GGas: []float64{1, 2}, STGas: []float64{1, 2}, SRGas: []float64{1, 2}, STLiquid: []float64{1, 2}, GLiquid: []float64{1, 2}}}
		var buf bytes.Buffer
		Expect(solv.WriteXLSX(&buf, table)).To(Succeed())
		f, err := excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		rows, err := f.GetRows("Liquid")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[2][2]).To(Equal("310"))
	})
})
