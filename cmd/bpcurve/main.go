/*
Command bpcurve edits the number of breakpoints of sensor calibration curves.

	bpcurve show sensor.340 --angles
	bpcurve adjust sensor.340 --target 200 --out sensor-200.340
	bpcurve edit sensor.340

Settings may be given in a YAML file with --config:

	divider: 4
	duplicates: drop
	maxPoints: 200
*/
package main

import (
	"os"

	"github.com/npillmayer/bpcurve/cmd/bpcurve/app"
)

func main() {
	command := app.NewCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
