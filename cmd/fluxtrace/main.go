// Command fluxtrace computes generator flux and voltage traces from a
// scenario file and exports them as CSV and PNG for the animation layer.
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fluxtrace/generator"
	"github.com/fluxtrace/generator/traceplot"
)

var (
	scenarioPath string
	outDir       string
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	root := &cobra.Command{
		Use:           "fluxtrace",
		Short:         "Flux and voltage trace toolkit for rotating-magnet generators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	simulate := &cobra.Command{
		Use:   "simulate",
		Short: "Compute per-coil traces from a scenario and export CSV and PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(log)
		},
	}
	simulate.Flags().StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml", "scenario YAML file")
	simulate.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check scenario geometry and report derived quantities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd)
		},
	}
	validate.Flags().StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml", "scenario YAML file")

	root.AddCommand(simulate, validate)

	if err := root.Execute(); err != nil {
		log.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

func runSimulate(log *zap.SugaredLogger) error {
	scenario, err := generator.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	log.Infow("scenario loaded",
		"magnets", scenario.Rotor.NumMagnets,
		"coils", len(scenario.Coils),
		"steps", scenario.Steps,
		"influence_width_deg", scenario.Rotor.InfluenceWidth()*180/math.Pi,
	)

	fluxes, err := scenario.FluxTraces()
	if err != nil {
		return err
	}
	voltages, err := scenario.VoltageTraces()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for name, tr := range fluxes {
		base := filepath.Join(outDir, "flux_"+name)
		if err := writeCSV(base+".csv", tr); err != nil {
			return err
		}
		if err := traceplot.WritePNG(base+".png", "Magnetic Flux "+name, "Flux", tr); err != nil {
			return err
		}
	}
	for name, tr := range voltages {
		base := filepath.Join(outDir, "voltage_"+name)
		if err := writeCSV(base+".csv", tr); err != nil {
			return err
		}
		if err := traceplot.WritePNG(base+".png", "Induced Voltage "+name, "Voltage", tr); err != nil {
			return err
		}
		log.Infow("coil trace computed", "coil", name, "rms", tr.RMS(), "peak", tr.AbsMax())
	}
	if err := traceplot.WriteComparisonPNG(filepath.Join(outDir, "voltage_all.png"),
		"Induced Voltage", "Voltage", voltages); err != nil {
		return err
	}

	log.Infow("simulation complete", "out", outDir)
	return nil
}

func runValidate(cmd *cobra.Command) error {
	scenario, err := generator.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	rotor := scenario.Rotor
	width := rotor.InfluenceWidth()
	cmd.Printf("rotor: %d magnets, magnet radius %g, path radius %g\n",
		rotor.NumMagnets, rotor.MagnetRadius, rotor.PathRadius)
	cmd.Printf("influence width: %.4f rad (%.1f deg)\n", width, width*180/math.Pi)
	cmd.Printf("maximum magnets that fit: %d\n", rotor.MaxMagnets())
	for _, c := range scenario.Coils {
		cmd.Printf("coil %s at %.1f deg\n", c.Name, c.OffsetDegrees)
	}
	return nil
}

func writeCSV(path string, tr generator.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for _, s := range tr {
		record := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.V, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
